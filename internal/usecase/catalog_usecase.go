package usecase

import (
	"catalog_service/internal/domain"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FlexibleNumber accepts a JSON number or a numeric string, since the
// management client sends prices both ways.
type FlexibleNumber string

func (n *FlexibleNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = FlexibleNumber(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = FlexibleNumber(num.String())
	return nil
}

type ProductInput struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Price       FlexibleNumber `json:"price"`
	Offer       FlexibleNumber `json:"offer"`
	Image       string         `json:"image"`
	Description string         `json:"description"`
}

type AdvertisementInput struct {
	Active      bool   `json:"active"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type UploadRequest struct {
	Products      []ProductInput      `json:"productos"`
	DeleteIDs     []string            `json:"productos_a_eliminar"`
	Advertisement *AdvertisementInput `json:"anuncio"`
}

type ReconcileResult struct {
	Upserted             int64    `json:"upserted"`
	Matched              int64    `json:"matched"`
	Deleted              int64    `json:"deleted"`
	GeneratedIDs         []string `json:"generated_ids,omitempty"`
	AdvertisementUpdated bool     `json:"advertisement_updated"`
}

type CatalogUseCase interface {
	ReconcileCatalog(ctx context.Context, req *UploadRequest) (*ReconcileResult, error)
	GetCatalog(ctx context.Context) (domain.CatalogSnapshot, error)
	GetProduct(ctx context.Context, id string) (*domain.ProductView, error)
	AddProduct(ctx context.Context, in ProductInput) (string, error)
	EditProduct(ctx context.Context, id string, updates map[string]interface{}) error
	RemoveProduct(ctx context.Context, id string) error
}

type catalogUseCase struct {
	productRepo domain.ProductRepository
	adRepo      domain.AdvertisementRepository
	log         *logrus.Logger
}

func NewCatalogUseCase(pRepo domain.ProductRepository, adRepo domain.AdvertisementRepository, logger *logrus.Logger) CatalogUseCase {
	return &catalogUseCase{
		productRepo: pRepo,
		adRepo:      adRepo,
		log:         logger,
	}
}

func normalizeImage(image string) string {
	return strings.ToLower(strings.TrimSpace(image))
}

func parsePrice(n FlexibleNumber) (float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%q is negative", s)
	}
	return v, nil
}

func normalizeProduct(in ProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, fmt.Errorf("product name cannot be empty")
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price: %v", err)
	}
	offer, err := parsePrice(in.Offer)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid offer: %v", err)
	}
	return domain.Product{
		ID:          strings.TrimSpace(in.ID),
		Name:        name,
		Price:       price,
		Offer:       offer,
		Image:       normalizeImage(in.Image),
		Description: strings.TrimSpace(in.Description),
	}, nil
}

// ReconcileCatalog applies one upload as delta/upsert semantics: incoming
// records update client-owned fields of existing products (counters stay),
// unknown or absent identifiers become new products with counters at zero,
// and the explicit deletion list is removed in the same unordered batch.
// The whole payload is validated before the store is touched.
func (uc *catalogUseCase) ReconcileCatalog(ctx context.Context, req *UploadRequest) (*ReconcileResult, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty upload payload", domain.ErrInvalidInput)
	}

	upserts := make([]domain.Product, 0, len(req.Products))
	generated := []string{}
	seen := make(map[string]struct{}, len(req.Products))
	for i, in := range req.Products {
		p, err := normalizeProduct(in)
		if err != nil {
			uc.log.Warnf("Use Case: Rejecting upload, productos[%d]: %v", i, err)
			return nil, fmt.Errorf("%w: productos[%d]: %v", domain.ErrInvalidInput, i, err)
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
			generated = append(generated, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			uc.log.Warnf("Use Case: Rejecting upload, duplicate product id %s", p.ID)
			return nil, fmt.Errorf("%w: duplicate product id %s", domain.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = struct{}{}
		upserts = append(upserts, p)
	}

	deleteIDs := make([]string, 0, len(req.DeleteIDs))
	for i, id := range req.DeleteIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			uc.log.Warnf("Use Case: Rejecting upload, productos_a_eliminar[%d] is empty", i)
			return nil, fmt.Errorf("%w: productos_a_eliminar[%d] is empty", domain.ErrInvalidInput, i)
		}
		deleteIDs = append(deleteIDs, id)
	}

	uc.log.Infof("Use Case: Reconciling catalog upload (%d products, %d deletions, advertisement=%t)",
		len(upserts), len(deleteIDs), req.Advertisement != nil)

	batch, err := uc.productRepo.ApplyBatch(ctx, upserts, deleteIDs)
	result := &ReconcileResult{GeneratedIDs: generated}
	if batch != nil {
		result.Upserted = batch.Upserted
		result.Matched = batch.Matched
		result.Deleted = batch.Deleted
	}
	if err != nil {
		uc.log.Errorf("Use Case: Catalog batch failed: %v", err)
		return result, err
	}

	if req.Advertisement != nil {
		ad := domain.Advertisement{
			Active:      req.Advertisement.Active,
			Title:       strings.TrimSpace(req.Advertisement.Title),
			Description: strings.TrimSpace(req.Advertisement.Description),
			Image:       normalizeImage(req.Advertisement.Image),
		}
		if err := uc.adRepo.ReplaceAdvertisement(ctx, ad); err != nil {
			uc.log.Errorf("Use Case: Advertisement replace failed after catalog batch: %v", err)
			return result, err
		}
		result.AdvertisementUpdated = true
	}

	uc.log.Infof("Use Case: Reconciliation done (%d matched, %d upserted, %d deleted)",
		result.Matched, result.Upserted, result.Deleted)
	return result, nil
}

func formatPrice(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func projectProduct(p domain.Product) domain.ProductView {
	price := formatPrice(p.Price)
	if price == "" {
		price = "0"
	}
	return domain.ProductView{
		Name:          p.Name,
		Price:         price,
		Offer:         formatPrice(p.Offer),
		Image:         p.Image,
		Description:   p.Description,
		FavoriteCount: p.FavoriteCount,
		StarCount:     p.StarCount,
		RatingCount:   p.FavoriteCount + p.StarCount,
	}
}

// GetCatalog projects the stored documents into the external snapshot shape.
// The identifier appears only as the map key. Malformed documents are skipped
// with a warning instead of failing the whole read; an empty catalog is an
// empty map, not an error.
func (uc *catalogUseCase) GetCatalog(ctx context.Context) (domain.CatalogSnapshot, error) {
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, err
	}

	snapshot := domain.CatalogSnapshot{}
	for _, p := range products {
		if p.ID == "" || p.Name == "" {
			uc.log.Warnf("Use Case: Skipping malformed product document (id=%q, name=%q)", p.ID, p.Name)
			continue
		}
		snapshot[p.ID] = projectProduct(p)
	}
	uc.log.Infof("Use Case: Catalog snapshot built with %d products", len(snapshot))
	return snapshot, nil
}

func (uc *catalogUseCase) GetProduct(ctx context.Context, id string) (*domain.ProductView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: product id cannot be empty", domain.ErrInvalidInput)
	}
	p, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %s: %v", id, err)
		return nil, err
	}
	view := projectProduct(*p)
	uc.log.Infof("Use Case: Product retrieved successfully for ID %s", id)
	return &view, nil
}

func (uc *catalogUseCase) AddProduct(ctx context.Context, in ProductInput) (string, error) {
	p, err := normalizeProduct(in)
	if err != nil {
		uc.log.Warnf("Use Case: Rejecting product add: %v", err)
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := uc.productRepo.ApplyBatch(ctx, []domain.Product{p}, nil); err != nil {
		uc.log.Errorf("Use Case: Repository failed to add product '%s': %v", p.Name, err)
		return "", err
	}
	uc.log.Infof("Use Case: Product '%s' added with ID %s", p.Name, p.ID)
	return p.ID, nil
}

func (uc *catalogUseCase) EditProduct(ctx context.Context, id string, updates map[string]interface{}) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: product id cannot be empty", domain.ErrInvalidInput)
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: no fields provided for update", domain.ErrInvalidInput)
	}

	validUpdates := make(map[string]interface{})
	for key, value := range updates {
		switch key {
		case "name":
			name, ok := value.(string)
			if !ok || strings.TrimSpace(name) == "" {
				uc.log.Warnf("Use Case: Invalid or empty 'name' provided for update ID %s", id)
				return fmt.Errorf("%w: product name cannot be empty if provided for update", domain.ErrInvalidInput)
			}
			validUpdates[key] = strings.TrimSpace(name)
		case "price", "offer":
			v, err := coercePrice(value)
			if err != nil {
				uc.log.Warnf("Use Case: Invalid '%s' provided for update ID %s: %v", key, id, err)
				return fmt.Errorf("%w: invalid %s: %v", domain.ErrInvalidInput, key, err)
			}
			validUpdates[key] = v
		case "image":
			image, ok := value.(string)
			if !ok {
				uc.log.Warnf("Use Case: Invalid type for 'image' provided for update ID %s", id)
				return fmt.Errorf("%w: invalid type for image", domain.ErrInvalidInput)
			}
			validUpdates[key] = normalizeImage(image)
		case "description":
			desc, ok := value.(string)
			if !ok {
				uc.log.Warnf("Use Case: Invalid type for 'description' provided for update ID %s", id)
				return fmt.Errorf("%w: invalid type for description", domain.ErrInvalidInput)
			}
			validUpdates[key] = strings.TrimSpace(desc)
		default:
			// Unknown and server-owned fields are dropped, not errors: the
			// writer client must never be able to touch the counters.
			uc.log.Warnf("Use Case: Ignoring unsupported field '%s' for product update ID %s", key, id)
		}
	}

	if len(validUpdates) == 0 {
		return fmt.Errorf("%w: no updatable fields provided", domain.ErrInvalidInput)
	}

	uc.log.Infof("Use Case: Attempting partial update for product ID %s with fields: %v", id, validUpdates)
	if err := uc.productRepo.UpdateProductFields(ctx, id, validUpdates); err != nil {
		uc.log.Warnf("Use Case: Repository failed partial update for product ID %s: %v", id, err)
		return err
	}
	return nil
}

func coercePrice(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("must not be negative")
		}
		return v, nil
	case string:
		return parsePrice(FlexibleNumber(v))
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

func (uc *catalogUseCase) RemoveProduct(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: product id cannot be empty", domain.ErrInvalidInput)
	}
	uc.log.Infof("Use Case: Attempting to delete product ID %s", id)
	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %s: %v", id, err)
		return err
	}
	return nil
}
