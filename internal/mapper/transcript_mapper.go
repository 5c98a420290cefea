package mapper

import (
	"encoding/json"

	"os-help-bot/internal/entity"
	"os-help-bot/internal/model"

	"gorm.io/datatypes"
)

type TranscriptMapper struct{}

func NewTranscriptMapper() *TranscriptMapper {
	return &TranscriptMapper{}
}

func (m *TranscriptMapper) SupportMessageToModel(e *entity.SupportMessage) *model.SupportMessage {
	if e == nil {
		return nil
	}
	return &model.SupportMessage{
		Id:        e.Id,
		TurnId:    e.TurnId,
		UserId:    e.UserId,
		Role:      e.Role,
		Content:   e.Content,
		Path:      e.Path,
		Sources:   toJSON(e.Sources),
		Links:     toJSON(e.Links),
		CreatedAt: e.CreatedAt,
	}
}

func (m *TranscriptMapper) SupportMessageToEntity(s *model.SupportMessage) *entity.SupportMessage {
	if s == nil {
		return nil
	}
	return &entity.SupportMessage{
		Id:        s.Id,
		TurnId:    s.TurnId,
		UserId:    s.UserId,
		Role:      s.Role,
		Content:   s.Content,
		Path:      s.Path,
		Sources:   fromJSON(s.Sources),
		Links:     fromJSON(s.Links),
		CreatedAt: s.CreatedAt,
	}
}

func toJSON(values []string) datatypes.JSON {
	if len(values) == 0 {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

func fromJSON(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}
