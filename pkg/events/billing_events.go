package events

import "time"

const (
	TypeSubscriptionActivated = "SUBSCRIPTION_ACTIVATED"
	TypeSubscriptionEnded     = "SUBSCRIPTION_ENDED"
	TypeCheckoutCreated       = "CHECKOUT_CREATED"
	TypeArtifactCreated       = "ARTIFACT_CREATED"
)

func NewSubscriptionActivated(userId string, subscriptionId string) Event {
	return BaseEvent{
		Type: TypeSubscriptionActivated,
		Data: map[string]interface{}{
			"user_id":         userId,
			"subscription_id": subscriptionId,
		},
		OccurredAt: time.Now(),
	}
}

func NewSubscriptionEnded(userId string, subscriptionId string, reason string) Event {
	return BaseEvent{
		Type: TypeSubscriptionEnded,
		Data: map[string]interface{}{
			"user_id":         userId,
			"subscription_id": subscriptionId,
			"reason":          reason,
		},
		OccurredAt: time.Now(),
	}
}

func NewCheckoutCreated(userId string, orderId string) Event {
	return BaseEvent{
		Type: TypeCheckoutCreated,
		Data: map[string]interface{}{
			"user_id":  userId,
			"order_id": orderId,
		},
		OccurredAt: time.Now(),
	}
}

func NewArtifactCreated(userId string, kind string, artifactId string) Event {
	return BaseEvent{
		Type: TypeArtifactCreated,
		Data: map[string]interface{}{
			"user_id":     userId,
			"kind":        kind,
			"artifact_id": artifactId,
		},
		OccurredAt: time.Now(),
	}
}
