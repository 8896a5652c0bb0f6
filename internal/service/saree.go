package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/suteetoe/sareecatalog/internal/model"
	"github.com/suteetoe/sareecatalog/internal/repository"
	"github.com/suteetoe/sareecatalog/pkg/logger"
	"github.com/suteetoe/sareecatalog/pkg/metrics"
	"go.uber.org/zap"
)

const sareeNameFormat = "Saree%03d"

// SareeInput carries the fields of a new saree
type SareeInput struct {
	Name      string
	ImageURLs []string
	Variety   string
	Remarks   string
	MinPrice  *float64
	MaxPrice  *float64
	Status    string
}

// SareePatch is a partial update; nil fields are left unchanged
type SareePatch struct {
	Name      *string
	ImageURLs *[]string
	Variety   *string
	Remarks   *string
	MinPrice  *float64
	MaxPrice  *float64
	Status    *string
}

// AdminSareeQuery filters the admin saree listing
type AdminSareeQuery struct {
	Search  string
	Variety string
	Status  string
	Paging
}

// ClientSareeQuery filters the client catalog. Varieties wins over Variety.
type ClientSareeQuery struct {
	Token     string
	Variety   string
	Varieties []string
	MinPrice  *float64
	MaxPrice  *float64
	Paging
}

// SareeService owns saree lifecycle and keeps every variety's
// total_saree_count in step with it
type SareeService struct {
	store *repository.Store
	scope *ScopeResolver
}

// NewSareeService creates a SareeService
func NewSareeService(store *repository.Store, scope *ScopeResolver) *SareeService {
	return &SareeService{store: store, scope: scope}
}

// Create validates and stores a saree, naming it from the saree counter when
// no name is given
func (s *SareeService) Create(ctx context.Context, in SareeInput) (*model.Saree, error) {
	if len(in.ImageURLs) == 0 || in.Variety == "" {
		return nil, ErrValidation("image_urls and variety are mandatory")
	}
	if in.MinPrice == nil || in.MaxPrice == nil {
		return nil, ErrValidation("min_price and max_price are mandatory")
	}
	if *in.MinPrice > *in.MaxPrice {
		return nil, ErrValidation("min_price must not exceed max_price")
	}
	status := in.Status
	if status == "" {
		status = model.StatusUnpublished
	}
	if !model.ValidStatus(status) {
		return nil, ErrValidation("status must be published or unpublished")
	}

	saree := &model.Saree{
		Name:      in.Name,
		ImageURLs: in.ImageURLs,
		Variety:   in.Variety,
		Remarks:   in.Remarks,
		MinPrice:  *in.MinPrice,
		MaxPrice:  *in.MaxPrice,
		Status:    status,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.FindVarietyByName(ctx, in.Variety); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrValidation("Variety not found")
			}
			return err
		}
		if saree.Name == "" {
			seq, err := tx.NextSequence(ctx, model.SareeNameCounter)
			if err != nil {
				return fmt.Errorf("next saree name: %w", err)
			}
			saree.Name = fmt.Sprintf(sareeNameFormat, seq)
		}
		if err := tx.CreateSaree(ctx, saree); err != nil {
			return err
		}
		_, err := tx.AdjustVarietyCount(ctx, saree.Variety, 1)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("saree", "create")
	logger.FromContext(ctx).Info("Saree created",
		zap.String("saree_id", saree.ID),
		zap.String("name", saree.Name),
		zap.String("variety", saree.Variety))
	return saree, nil
}

// Update applies a partial update. Moving a saree to another variety moves
// one unit of count from the old variety to the new one.
func (s *SareeService) Update(ctx context.Context, id string, patch SareePatch) (*model.Saree, error) {
	if patch.Status != nil && !model.ValidStatus(*patch.Status) {
		return nil, ErrValidation("status must be published or unpublished")
	}

	var saree *model.Saree
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		saree, err = tx.FindSareeByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound("Saree not found")
		}
		if err != nil {
			return err
		}

		if patch.Variety != nil && *patch.Variety != saree.Variety {
			if _, err := tx.FindVarietyByName(ctx, *patch.Variety); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrValidation("Variety not found")
				}
				return err
			}
			// a missing old variety is skipped: zero rows adjusted
			if _, err := tx.AdjustVarietyCount(ctx, saree.Variety, -1); err != nil {
				return err
			}
			if _, err := tx.AdjustVarietyCount(ctx, *patch.Variety, 1); err != nil {
				return err
			}
			saree.Variety = *patch.Variety
		}

		if patch.Name != nil {
			saree.Name = *patch.Name
		}
		if patch.ImageURLs != nil {
			saree.ImageURLs = *patch.ImageURLs
		}
		if patch.Remarks != nil {
			saree.Remarks = *patch.Remarks
		}
		if patch.MinPrice != nil {
			saree.MinPrice = *patch.MinPrice
		}
		if patch.MaxPrice != nil {
			saree.MaxPrice = *patch.MaxPrice
		}
		if patch.Status != nil {
			saree.Status = *patch.Status
		}
		if saree.MinPrice > saree.MaxPrice {
			return ErrValidation("min_price must not exceed max_price")
		}
		return tx.SaveSaree(ctx, saree)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("saree", "update")
	logger.FromContext(ctx).Info("Saree updated", zap.String("saree_id", saree.ID))
	return saree, nil
}

// Delete removes a saree, its category memberships and one unit of its
// variety's count
func (s *SareeService) Delete(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		saree, err := tx.FindSareeByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound("Saree not found")
		}
		if err != nil {
			return err
		}
		if _, err := tx.AdjustVarietyCount(ctx, saree.Variety, -1); err != nil {
			return err
		}
		return tx.DeleteSaree(ctx, saree.ID)
	})
	if err != nil {
		return err
	}

	metrics.RecordMutation("saree", "delete")
	logger.FromContext(ctx).Info("Saree deleted", zap.String("saree_id", id))
	return nil
}

// Get loads a saree regardless of status
func (s *SareeService) Get(ctx context.Context, id string) (*model.Saree, error) {
	saree, err := s.store.FindSareeByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound("Saree not found")
	}
	return saree, err
}

// ListAdmin lists every saree by name
func (s *SareeService) ListAdmin(ctx context.Context, q AdminSareeQuery) (*ListPage[model.Saree], error) {
	p := q.Paging.normalize(DefaultAdminPerPage)
	filter := repository.SareeFilter{Search: q.Search, Status: q.Status}
	if q.Variety != "" {
		filter.Varieties = []string{q.Variety}
	}
	rows, total, err := s.store.ListSarees(ctx, filter, repository.OrderByName, p.window())
	if err != nil {
		return nil, fmt.Errorf("list sarees: %w", err)
	}
	return newListPage(p, total, rows), nil
}

// ListClient lists the sarees visible under the client's token, most
// recently edited first
func (s *SareeService) ListClient(ctx context.Context, q ClientSareeQuery) (*ListPage[model.Saree], error) {
	p := q.Paging.normalize(DefaultClientPerPage)
	filter := s.scope.Resolve(ctx, q.Token)
	switch {
	case len(q.Varieties) > 0:
		filter.Varieties = q.Varieties
	case q.Variety != "":
		filter.Varieties = []string{q.Variety}
	}
	filter.MinPrice = q.MinPrice
	filter.MaxPrice = q.MaxPrice

	rows, total, err := s.store.ListSarees(ctx, filter, repository.OrderByLastEditedDesc, p.window())
	if err != nil {
		return nil, fmt.Errorf("list client sarees: %w", err)
	}
	return newListPage(p, total, rows), nil
}

// GetClient loads one saree if it is visible under the client's token
func (s *SareeService) GetClient(ctx context.Context, token, id string) (*model.Saree, error) {
	saree, err := s.store.FindSaree(ctx, id, s.scope.Resolve(ctx, token))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound("Saree not found")
	}
	return saree, err
}

// ClientVarieties returns the variety names in use by the sarees visible
// under the client's token
func (s *SareeService) ClientVarieties(ctx context.Context, token string) ([]string, error) {
	names, err := s.store.DistinctVarieties(ctx, s.scope.Resolve(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("list client varieties: %w", err)
	}
	return names, nil
}
