package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tuanvumaihuynh/product-admin/internal/event"
	"github.com/tuanvumaihuynh/product-admin/internal/model"
	"github.com/tuanvumaihuynh/product-admin/internal/repository"
	"github.com/tuanvumaihuynh/product-admin/internal/shopify"
	"github.com/tuanvumaihuynh/product-admin/pkg/outbox"
	"github.com/tuanvumaihuynh/product-admin/pkg/ptr"
)

// ActionParams are the fields of a product form submission.
type ActionParams struct {
	ID              string
	DeleteID        string
	Name            string
	DescriptionHTML string
	Status          model.ProductStatus
}

// ResolveAction picks the mutation for a submission: a delete id wins over
// an id, and no id at all means create.
func ResolveAction(params ActionParams) model.ProductAction {
	switch {
	case strings.TrimSpace(params.DeleteID) != "":
		return model.ProductActionDelete
	case strings.TrimSpace(params.ID) != "":
		return model.ProductActionUpdate
	default:
		return model.ProductActionCreate
	}
}

type ProductService interface {
	// LoadProducts returns the latest products, most recent first.
	LoadProducts(ctx context.Context) ([]model.ProductEdge, error)
	// Act issues exactly one mutation chosen by ResolveAction and returns its raw result.
	Act(ctx context.Context, params ActionParams) (model.MutationResult, error)
}

type productService struct {
	logger        *slog.Logger
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

// NewProductService creates the product service. A nil outboxMsgRepo
// disables the action journal.
func NewProductService(
	logger *slog.Logger,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		logger:        logger.With(slog.String("service", "product")),
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) LoadProducts(ctx context.Context) ([]model.ProductEdge, error) {
	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) Act(ctx context.Context, params ActionParams) (model.MutationResult, error) {
	var (
		res model.MutationResult
		err error
	)

	action := ResolveAction(params)
	switch action {
	case model.ProductActionDelete:
		res, err = s.productRepo.DeleteProduct(ctx, params.DeleteID)
	case model.ProductActionUpdate:
		res, err = s.productRepo.UpdateProduct(ctx, repository.ProductInput{
			ID:              params.ID,
			Title:           params.Name,
			DescriptionHTML: params.DescriptionHTML,
			Status:          params.Status,
		})
	default:
		res, err = s.productRepo.CreateProduct(ctx, repository.ProductInput{
			Title:           params.Name,
			DescriptionHTML: params.DescriptionHTML,
			Status:          params.Status,
		})
	}
	if err != nil {
		return model.MutationResult{}, fmt.Errorf("product repository %s product: %w", action, err)
	}

	if !res.Succeeded() {
		s.logger.WarnContext(ctx, "product mutation returned user errors",
			slog.String("action", string(action)),
			slog.Any("user_errors", res.UserErrors),
		)
		return res, nil
	}

	s.journal(ctx, params, res)

	return res, nil
}

// journal records a successful mutation. The mutation already happened
// remotely, so failures are only logged.
func (s *productService) journal(ctx context.Context, params ActionParams, res model.MutationResult) {
	if s.outboxMsgRepo == nil {
		return
	}

	ev := actionEvent(ctx, params, res)

	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.ErrorContext(ctx, "error marshaling product action event", slog.Any("error", err))
		return
	}

	if err := s.outboxMsgRepo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
		Topic:        event.TopicForAction(ev.Action),
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: ptr.New(ev.ProductID),
	}); err != nil {
		s.logger.ErrorContext(ctx, "error journaling product action",
			slog.String("action", string(ev.Action)),
			slog.String("product_id", ev.ProductID),
			slog.Any("error", err),
		)
	}
}

func actionEvent(ctx context.Context, params ActionParams, res model.MutationResult) model.ProductActionEvent {
	ev := model.ProductActionEvent{
		Action:     res.Action,
		ProductID:  params.ID,
		Title:      params.Name,
		Status:     params.Status,
		OccurredAt: time.Now(),
	}

	switch {
	case res.Action == model.ProductActionDelete:
		ev.ProductID = params.DeleteID
		if res.DeletedProductID != "" {
			ev.ProductID = res.DeletedProductID
		}
		ev.Title, ev.Status = "", ""
	case res.Product != nil:
		ev.ProductID = res.Product.ID
		ev.Title = res.Product.Title
		ev.Status = res.Product.Status
	}

	if sess, ok := shopify.SessionFromContext(ctx); ok {
		ev.Shop = sess.Shop
	}

	return ev
}
