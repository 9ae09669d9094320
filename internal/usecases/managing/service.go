package managing

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-manager-api/infrastructure/repository"
	"github.com/vfg2006/ad-manager-api/internal/domain"
)

// Manager expõe o gerenciamento administrativo de anúncios e campanhas.
// O núcleo de veiculação e agregação apenas lê o que este serviço grava.
type Manager interface {
	CreateAd(ad *domain.Ad, adminID int) (*domain.Ad, error)
	ListAds(adminID *int) ([]*domain.Ad, error)
	GetAd(id string) (*domain.Ad, error)
	UpdateAd(req *domain.UpdateAdRequest, adminID int) (*domain.Ad, error)
	UpdateAdStatus(id string, status domain.Status, adminID int) (*domain.Ad, error)
	DeleteAd(id string, adminID int) error

	CreateCampaign(campaign *domain.Campaign, adminID int) (*domain.Campaign, error)
	ListCampaigns() ([]*domain.Campaign, error)
	GetCampaign(id string) (*domain.Campaign, error)
	UpdateCampaign(req *domain.UpdateCampaignRequest, adminID int) (*domain.Campaign, error)
	UpdateCampaignStatus(id string, status domain.Status, adminID int) (*domain.Campaign, error)
	DeleteCampaign(id string, adminID int) error
	AssignAds(campaignID string, adIDs []string, adminID int) (*domain.Campaign, error)
}

type Service struct {
	adRepo       repository.AdRepository
	campaignRepo repository.CampaignRepository
	activityRepo repository.ActivityLogRepository
}

func NewService(
	adRepo repository.AdRepository,
	campaignRepo repository.CampaignRepository,
	activityRepo repository.ActivityLogRepository,
) Manager {
	return &Service{
		adRepo:       adRepo,
		campaignRepo: campaignRepo,
		activityRepo: activityRepo,
	}
}

func (s *Service) CreateAd(ad *domain.Ad, adminID int) (*domain.Ad, error) {
	if ad.Title == "" || ad.CtaLink == "" || ad.ImageURL == "" {
		return nil, ErrMissingRequiredData
	}

	if ad.StartDate.After(ad.EndDate) {
		return nil, ErrInvalidDateWindow
	}

	ad.ID = uuid.NewString()
	ad.AdminID = adminID
	if ad.Status == "" {
		ad.Status = domain.StatusActive
	}

	created, err := s.adRepo.Create(ad)
	if err != nil {
		return nil, err
	}

	s.logActivity("CREATE", "ad", created.ID, adminID, map[string]any{"title": created.Title})

	return created, nil
}

func (s *Service) ListAds(adminID *int) ([]*domain.Ad, error) {
	return s.adRepo.List(adminID)
}

func (s *Service) GetAd(id string) (*domain.Ad, error) {
	ad, err := s.adRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if ad == nil {
		return nil, ErrAdNotFound
	}

	return ad, nil
}

func (s *Service) UpdateAd(req *domain.UpdateAdRequest, adminID int) (*domain.Ad, error) {
	ad, err := s.adRepo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}

	if ad == nil {
		return nil, ErrAdNotFound
	}

	if req.Title != nil {
		ad.Title = *req.Title
	}

	if req.CtaLink != nil {
		ad.CtaLink = *req.CtaLink
	}

	if req.ImageURL != nil {
		ad.ImageURL = *req.ImageURL
	}

	if req.Placement != nil {
		ad.Placement = *req.Placement
	}

	if req.StartDate != nil {
		ad.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		ad.EndDate = *req.EndDate
	}

	if req.CampaignID != nil {
		ad.CampaignID = req.CampaignID
	}

	if ad.StartDate.After(ad.EndDate) {
		return nil, ErrInvalidDateWindow
	}

	if err := s.adRepo.Update(ad); err != nil {
		return nil, err
	}

	s.logActivity("UPDATE", "ad", ad.ID, adminID, map[string]any{"title": ad.Title})

	return ad, nil
}

func (s *Service) UpdateAdStatus(id string, status domain.Status, adminID int) (*domain.Ad, error) {
	ad, err := s.adRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if ad == nil {
		return nil, ErrAdNotFound
	}

	if err := s.adRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	ad.Status = status

	s.logActivity("UPDATE_STATUS", "ad", id, adminID, map[string]any{"status": status})

	return ad, nil
}

func (s *Service) DeleteAd(id string, adminID int) error {
	ad, err := s.adRepo.GetByID(id)
	if err != nil {
		return err
	}

	if ad == nil {
		return ErrAdNotFound
	}

	if err := s.adRepo.Delete(id); err != nil {
		return err
	}

	s.logActivity("DELETE", "ad", id, adminID, map[string]any{"title": ad.Title})

	return nil
}

func (s *Service) CreateCampaign(campaign *domain.Campaign, adminID int) (*domain.Campaign, error) {
	if campaign.Name == "" {
		return nil, ErrMissingRequiredData
	}

	if campaign.StartDate.After(campaign.EndDate) {
		return nil, ErrInvalidDateWindow
	}

	campaign.ID = uuid.NewString()
	campaign.AdminID = adminID
	if campaign.Status == "" {
		campaign.Status = domain.StatusActive
	}

	created, err := s.campaignRepo.Create(campaign)
	if err != nil {
		return nil, err
	}

	s.logActivity("CREATE", "campaign", created.ID, adminID, map[string]any{"name": created.Name})

	return created, nil
}

func (s *Service) ListCampaigns() ([]*domain.Campaign, error) {
	return s.campaignRepo.List()
}

func (s *Service) GetCampaign(id string) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	return campaign, nil
}

func (s *Service) UpdateCampaign(req *domain.UpdateCampaignRequest, adminID int) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}

	if req.StartDate != nil {
		campaign.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		campaign.EndDate = *req.EndDate
	}

	if campaign.StartDate.After(campaign.EndDate) {
		return nil, ErrInvalidDateWindow
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, err
	}

	s.logActivity("UPDATE", "campaign", campaign.ID, adminID, map[string]any{"name": campaign.Name})

	return campaign, nil
}

func (s *Service) UpdateCampaignStatus(id string, status domain.Status, adminID int) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if err := s.campaignRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	campaign.Status = status

	s.logActivity("UPDATE_STATUS", "campaign", id, adminID, map[string]any{"status": status})

	return campaign, nil
}

func (s *Service) DeleteCampaign(id string, adminID int) error {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return err
	}

	if campaign == nil {
		return ErrCampaignNotFound
	}

	if err := s.campaignRepo.Delete(id); err != nil {
		return err
	}

	s.logActivity("DELETE", "campaign", id, adminID, map[string]any{"name": campaign.Name})

	return nil
}

func (s *Service) AssignAds(campaignID string, adIDs []string, adminID int) (*domain.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	if len(adIDs) == 0 {
		return campaign, nil
	}

	if err := s.adRepo.AssignCampaign(adIDs, campaignID); err != nil {
		return nil, err
	}

	s.logActivity("ASSIGN_ADS", "campaign", campaignID, adminID, map[string]any{"ad_ids": adIDs})

	return s.campaignRepo.GetByID(campaignID)
}

// logActivity registra a mutação para auditoria. Falha de auditoria não
// derruba a operação principal; apenas é logada.
func (s *Service) logActivity(action, entity, entityID string, adminID int, metadata map[string]any) {
	err := s.activityRepo.Log(&domain.ActivityLog{
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		AdminID:  adminID,
		Metadata: metadata,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":    action,
			"entity":    entity,
			"entity_id": entityID,
		}).Warn("Erro ao registrar log de atividade")
	}
}
