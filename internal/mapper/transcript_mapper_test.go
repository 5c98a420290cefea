package mapper

import (
	"testing"
	"time"

	"os-help-bot/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSupportMessageMapping(t *testing.T) {
	m := NewTranscriptMapper()
	e := &entity.SupportMessage{
		Id:        uuid.New(),
		TurnId:    uuid.New(),
		UserId:    "u1",
		Role:      entity.RoleBot,
		Content:   "Here are some insights:",
		Path:      "multi-source",
		Sources:   []string{"extractive-qa", "web-search"},
		Links:     []string{"https://a"},
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	model := m.SupportMessageToModel(e)
	assert.JSONEq(t, `["extractive-qa","web-search"]`, string(model.Sources))

	back := m.SupportMessageToEntity(model)
	assert.Equal(t, e, back)
}

func TestSupportMessageMappingEmptySlices(t *testing.T) {
	m := NewTranscriptMapper()

	model := m.SupportMessageToModel(&entity.SupportMessage{Role: entity.RoleUser})
	assert.Equal(t, "[]", string(model.Links))
	assert.Empty(t, m.SupportMessageToEntity(model).Links)

	assert.Nil(t, m.SupportMessageToModel(nil))
	assert.Nil(t, m.SupportMessageToEntity(nil))
}
