// Package events publishes domain events after a change has been committed.
//
// Events are notifications, not part of the unit of work: a failed publish is
// logged by the caller and never undoes the change that produced it.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yeongunheo/kitchenpos/internal/models"
)

// Event types. They double as AMQP routing keys.
const (
	TypeMenuCreated            = "menu.created"
	TypeTableGroupCreated      = "table_group.created"
	TypeTableGroupUngrouped    = "table_group.ungrouped"
	TypeOrderTableEmptyChanged = "order_table.empty_changed"
)

// Event is the envelope sent to subscribers.
type Event struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	OccurredAt int64  `json:"occurred_at"`
	Payload    any    `json:"payload"`
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) error { return nil }

func newEvent(eventType string, payload any) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().Unix(),
		Payload:    payload,
	}
}

// MenuCreatedPayload describes a newly created menu.
type MenuCreatedPayload struct {
	MenuID      string `json:"menu_id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	MenuGroupID string `json:"menu_group_id"`
}

// MenuCreated builds the event for a persisted menu.
func MenuCreated(menu *models.Menu) Event {
	return newEvent(TypeMenuCreated, MenuCreatedPayload{
		MenuID:      menu.ID,
		Name:        menu.Name,
		Price:       menu.Price.String(),
		MenuGroupID: menu.MenuGroupID,
	})
}

// TableGroupPayload identifies a table group and the tables it affected.
type TableGroupPayload struct {
	TableGroupID  string   `json:"table_group_id"`
	OrderTableIDs []string `json:"order_table_ids"`
}

// TableGroupCreated builds the event for a newly formed group.
func TableGroupCreated(group *models.TableGroup) Event {
	return newEvent(TypeTableGroupCreated, TableGroupPayload{
		TableGroupID:  group.ID,
		OrderTableIDs: group.OrderTableIDs(),
	})
}

// TableGroupUngrouped builds the event for a group whose members were released.
func TableGroupUngrouped(tableGroupID string, orderTableIDs []string) Event {
	return newEvent(TypeTableGroupUngrouped, TableGroupPayload{
		TableGroupID:  tableGroupID,
		OrderTableIDs: orderTableIDs,
	})
}

// OrderTableEmptyChangedPayload carries the new emptiness of a table.
type OrderTableEmptyChangedPayload struct {
	OrderTableID string `json:"order_table_id"`
	Empty        bool   `json:"empty"`
}

// OrderTableEmptyChanged builds the event for a table whose emptiness changed.
func OrderTableEmptyChanged(table *models.OrderTable) Event {
	return newEvent(TypeOrderTableEmptyChanged, OrderTableEmptyChangedPayload{
		OrderTableID: table.ID,
		Empty:        table.Empty,
	})
}
