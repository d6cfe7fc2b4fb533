package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Graph struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	ThreadId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	MessageId *uuid.UUID     `gorm:"type:uuid"`
	Title     string         `gorm:"type:text;not null"`
	XMin      float64        `gorm:"not null"`
	XMax      float64        `gorm:"not null"`
	Series    datatypes.JSON `gorm:"type:jsonb;not null"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Graph) TableName() string {
	return "graphs"
}

type FlashcardSet struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ThreadId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	MessageId     *uuid.UUID     `gorm:"type:uuid"`
	Title         string         `gorm:"type:text;not null"`
	Topic         string         `gorm:"type:text"`
	Cards         datatypes.JSON `gorm:"type:jsonb;not null"`
	Tags          datatypes.JSON `gorm:"type:jsonb"`
	MasteryScore  float64        `gorm:"default:0"`
	AttemptCount  int            `gorm:"default:0"`
	LastStudiedAt *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (FlashcardSet) TableName() string {
	return "flashcard_sets"
}

type Solution struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	ThreadId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	MessageId *uuid.UUID     `gorm:"type:uuid"`
	Problem   string         `gorm:"type:text;not null"`
	Steps     datatypes.JSON `gorm:"type:jsonb;not null"`
	Answer    string         `gorm:"type:text"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Solution) TableName() string {
	return "solutions"
}

type PracticeTest struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ThreadId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	MessageId     *uuid.UUID     `gorm:"type:uuid"`
	Title         string         `gorm:"type:text;not null"`
	Topic         string         `gorm:"type:text"`
	Questions     datatypes.JSON `gorm:"type:jsonb;not null"`
	Tags          datatypes.JSON `gorm:"type:jsonb"`
	MasteryScore  float64        `gorm:"default:0"`
	AttemptCount  int            `gorm:"default:0"`
	LastStudiedAt *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (PracticeTest) TableName() string {
	return "practice_tests"
}
