package cloud

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestAlertItemShape(t *testing.T) {
	item, err := attributevalue.MarshalMap(Alert{AlertID: "a-1", Module: "equipment", Confidence: 89, CreatedAt: 1720000000})
	if err != nil {
		t.Fatal(err)
	}
	id, ok := item["alertId"].(*types.AttributeValueMemberS)
	if !ok || id.Value != "a-1" {
		t.Fatalf("alertId attribute=%#v", item["alertId"])
	}
	if _, ok := item["acknowledgedAt"]; ok {
		t.Fatal("zero acknowledgedAt should be omitted")
	}
	var back Alert
	if err := attributevalue.UnmarshalMap(item, &back); err != nil {
		t.Fatal(err)
	}
	if back.Module != "equipment" || back.Confidence != 89 {
		t.Fatalf("round trip lost fields: %+v", back)
	}
}
