package controllers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreditDebitQueryIsConditionalDecrement(t *testing.T) {
	id := primitive.NewObjectID()
	filter, update := creditDebitQuery(id, time.Now())

	if filter["_id"] != id {
		t.Errorf("filter should target the sender, got %v", filter["_id"])
	}

	cond, ok := filter["messageCredits"].(bson.M)
	if !ok || cond["$gte"] != 1 {
		t.Error("debit must require a positive balance in the filter")
	}

	inc, ok := update["$inc"].(bson.M)
	if !ok || inc["messageCredits"] != -1 {
		t.Error("debit must decrement the balance in place")
	}

	// Operator-only update: replacing the whole document would overwrite
	// concurrent XP awards with a stale snapshot
	for op := range update {
		if op != "$inc" && op != "$set" {
			t.Errorf("unexpected update operator %q", op)
		}
	}
}
