package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yeongunheo/kitchenpos/internal/models"
)

func TestEventBuilders(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		wantType string
		wantKeys []string
	}{
		{
			name: "menu created",
			event: MenuCreated(&models.Menu{
				ID: "m1", Name: "Set", Price: decimal.RequireFromString("13.00"), MenuGroupID: "g1",
			}),
			wantType: TypeMenuCreated,
			wantKeys: []string{"menu_id", "name", "price", "menu_group_id"},
		},
		{
			name: "table group created",
			event: TableGroupCreated(&models.TableGroup{
				ID:          "tg1",
				OrderTables: []models.OrderTable{{ID: "t1"}, {ID: "t2"}},
			}),
			wantType: TypeTableGroupCreated,
			wantKeys: []string{"table_group_id", "order_table_ids"},
		},
		{
			name:     "table group ungrouped",
			event:    TableGroupUngrouped("tg1", []string{"t1", "t2"}),
			wantType: TypeTableGroupUngrouped,
			wantKeys: []string{"table_group_id", "order_table_ids"},
		},
		{
			name:     "order table empty changed",
			event:    OrderTableEmptyChanged(&models.OrderTable{ID: "t1", Empty: true}),
			wantType: TypeOrderTableEmptyChanged,
			wantKeys: []string{"order_table_id", "empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.event.Type != tt.wantType {
				t.Errorf("Type = %s, want %s", tt.event.Type, tt.wantType)
			}
			if tt.event.ID == "" || tt.event.OccurredAt == 0 {
				t.Error("Expected ID and OccurredAt to be set")
			}

			body, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			var decoded struct {
				Payload map[string]any `json:"payload"`
			}
			if err := json.Unmarshal(body, &decoded); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			for _, key := range tt.wantKeys {
				if _, ok := decoded.Payload[key]; !ok {
					t.Errorf("Payload missing %q: %s", key, body)
				}
			}
		})
	}
}

func TestMenuCreatedKeepsExactPrice(t *testing.T) {
	event := MenuCreated(&models.Menu{ID: "m1", Price: decimal.RequireFromString("0.30")})
	payload, ok := event.Payload.(MenuCreatedPayload)
	if !ok {
		t.Fatalf("Unexpected payload type %T", event.Payload)
	}
	if payload.Price != "0.3" {
		t.Errorf("Price = %s, want 0.3", payload.Price)
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), TableGroupUngrouped("tg1", nil)); err != nil {
		t.Errorf("NopPublisher returned %v", err)
	}
}
