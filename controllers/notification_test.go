package controllers

import (
	"testing"

	"wastebank/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMergeRecipientsPreservesReadFlags(t *testing.T) {
	kept := primitive.NewObjectID()
	removed := primitive.NewObjectID()
	added := primitive.NewObjectID()

	existing := []models.NotificationRecipient{
		{UserID: kept, IsRead: true},
		{UserID: removed, IsRead: true},
	}

	merged := mergeRecipients(existing, []primitive.ObjectID{kept, added})

	if len(merged) != 2 {
		t.Fatalf("got %d recipients, want 2", len(merged))
	}
	if merged[0].UserID != kept || !merged[0].IsRead {
		t.Errorf("kept recipient = %+v, want read flag preserved", merged[0])
	}
	if merged[1].UserID != added || merged[1].IsRead {
		t.Errorf("new recipient = %+v, want unread", merged[1])
	}
}

func TestMergeRecipientsFromScratch(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	merged := mergeRecipients(nil, []primitive.ObjectID{a, b})

	if len(merged) != 2 {
		t.Fatalf("got %d recipients, want 2", len(merged))
	}
	for _, r := range merged {
		if r.IsRead {
			t.Errorf("recipient %s starts read, want unread", r.UserID.Hex())
		}
	}
}

func TestParseRecipientIDs(t *testing.T) {
	valid := primitive.NewObjectID().Hex()

	if _, err := parseRecipientIDs([]string{valid}); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	if _, err := parseRecipientIDs([]string{valid, "not-hex"}); err == nil {
		t.Error("expected error for invalid hex id, got nil")
	}
}
