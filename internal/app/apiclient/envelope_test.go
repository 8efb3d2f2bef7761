package apiclient

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizedMessage_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want LocalizedMessage
	}{
		{"object", `{"uz":"Xato","en":"Error","ru":"Ошибка"}`, LocalizedMessage{Uz: "Xato", En: "Error", Ru: "Ошибка"}},
		{"string", `"Unauthorized"`, LocalizedMessage{Uz: "Unauthorized", En: "Unauthorized", Ru: "Unauthorized"}},
		{"validation list", `["phone must be a string","name is required"]`, LocalizedMessage{Uz: "phone must be a string", En: "phone must be a string", Ru: "phone must be a string"}},
		{"null", `null`, LocalizedMessage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var env Envelope[struct{}]
			require.NoError(t, json.Unmarshal([]byte(`{"statusCode":400,"message":`+tt.raw+`}`), &env))
			assert.Equal(t, tt.want, env.Message)
		})
	}
}

func TestLocalizedMessage_Localize(t *testing.T) {
	msg := LocalizedMessage{Uz: "Saqlandi", En: "Saved", Ru: "Сохранено"}

	assert.Equal(t, "Saqlandi", msg.Localize(""))
	assert.Equal(t, "Saved", msg.Localize("en-US,en;q=0.9"))
	assert.Equal(t, "Сохранено", msg.Localize("ru-RU,ru;q=0.8,en;q=0.5"))
	assert.Equal(t, "Saqlandi", msg.Localize("de-DE"))

	partial := LocalizedMessage{En: "Only english"}
	assert.Equal(t, "Only english", partial.Localize("ru"))
	assert.True(t, LocalizedMessage{}.IsZero())
}
