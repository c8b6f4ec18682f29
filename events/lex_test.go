package events

import (
	"encoding/json"
	"testing"
)

func TestLexEventDecode(t *testing.T) {
	data := []byte(`{
		"messageVersion": "1.0",
		"invocationSource": "FulfillmentCodeHook",
		"userId": "user-1",
		"inputTranscript": "book a room",
		"sessionAttributes": {"stage": "prod"},
		"bot": {"name": "HotelBot", "alias": "$LATEST", "version": "1"},
		"outputDialogMode": "Text",
		"currentIntent": {
			"name": "BookHotel",
			"slots": {"city": "Seattle"},
			"confirmationStatus": "None"
		}
	}`)

	var event LexEvent
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.MessageVersion != "1.0" {
		t.Errorf("MessageVersion = %q", event.MessageVersion)
	}
	if event.Bot == nil || event.Bot.Name != "HotelBot" {
		t.Errorf("Bot = %+v", event.Bot)
	}
	if event.CurrentIntent == nil || event.CurrentIntent.Slots["city"] != "Seattle" {
		t.Errorf("CurrentIntent = %+v", event.CurrentIntent)
	}
}

// Documented-required string fields arriving as null or "" must decode to
// absent, never raise a decode error.
func TestLexEventToleratesNullAndEmptyFields(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"nulls", `{
			"messageVersion": null,
			"invocationSource": null,
			"userId": null,
			"inputTranscript": null,
			"sessionAttributes": null,
			"bot": {"name": null, "alias": null, "version": null},
			"currentIntent": {"name": null, "slots": null, "slotDetails": null}
		}`},
		{"empty strings", `{
			"messageVersion": "",
			"invocationSource": "",
			"userId": "",
			"bot": {"name": "", "alias": "", "version": ""}
		}`},
		{"empty object", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var event LexEvent
			if err := json.Unmarshal([]byte(tc.data), &event); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if event.MessageVersion != "" {
				t.Errorf("MessageVersion = %q, want absent", event.MessageVersion)
			}
			if event.Bot != nil && event.Bot.Name != "" {
				t.Errorf("Bot.Name = %q, want absent", event.Bot.Name)
			}
		})
	}
}
