package domain

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// EventList is a JSON-codable slice of DomainEvent. On the wire every event
// carries a "type" discriminator next to its payload fields.
type EventList []DomainEvent

func (l EventList) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(l))
	for _, ev := range l {
		raw, err := marshalEvent(ev)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return json.Marshal(out)
}

func (l *EventList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	events := make([]DomainEvent, 0, len(raws))
	for _, raw := range raws {
		ev, err := unmarshalEvent(raw)
		if err != nil {
			return err
		}
		events = append(events, ev)
	}
	*l = events
	return nil
}

func marshalEvent(ev DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	typeTag, err := json.Marshal(ev.EventType())
	if err != nil {
		return nil, err
	}
	fields["type"] = typeTag
	return json.Marshal(fields)
}

func unmarshalEvent(raw []byte) (DomainEvent, error) {
	var head struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case EventInitialPurchase:
		var ev InitialPurchaseEvent
		return ev, json.Unmarshal(raw, &ev)
	case EventNewcomerJoins:
		var ev NewcomerJoinsEvent
		return ev, json.Unmarshal(raw, &ev)
	case EventHiddenLotRevealed:
		var ev HiddenLotRevealedEvent
		return ev, json.Unmarshal(raw, &ev)
	case EventPortageSettlement:
		var ev PortageSettlementEvent
		return ev, json.Unmarshal(raw, &ev)
	case EventCoproTakesLoan:
		var ev CoproTakesLoanEvent
		return ev, json.Unmarshal(raw, &ev)
	case EventParticipantExits:
		var ev ParticipantExitsEvent
		return ev, json.Unmarshal(raw, &ev)
	case EventCoproSale:
		var ev CoproSaleEvent
		return ev, json.Unmarshal(raw, &ev)
	case EventFraisGenerauxYear1, EventFraisGenerauxYear2, EventFraisGenerauxYear3:
		var ev FraisGenerauxYearlyEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, err
		}
		ev.Type = head.Type
		return ev, nil
	case EventNewcomerReimbursement:
		var ev NewcomerReimbursementEvent
		return ev, json.Unmarshal(raw, &ev)
	default:
		return nil, fmt.Errorf("unknown event type %q", head.Type)
	}
}
