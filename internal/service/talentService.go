package service

import (
	"context"

	repository "github.com/jobgate/jobgate-backend/internal/database/postgres"
	"github.com/jobgate/jobgate-backend/internal/entity"
)

type talentService struct {
	talentRepo repository.TalentRepository
}

func NewTalentService(talentRepo repository.TalentRepository) TalentService {
	return &talentService{talentRepo: talentRepo}
}

func (s *talentService) CreateTalent(ctx context.Context, talent *entity.Talent) error {
	return s.talentRepo.Create(ctx, talent)
}

func (s *talentService) GetTalent(ctx context.Context, id int64) (*entity.Talent, error) {
	return s.talentRepo.GetByID(ctx, id)
}

func (s *talentService) GetAllTalents(ctx context.Context) ([]*entity.Talent, error) {
	return s.talentRepo.GetAll(ctx)
}

func (s *talentService) UpdateTalent(ctx context.Context, talent *entity.Talent) error {
	return s.talentRepo.Update(ctx, talent)
}
