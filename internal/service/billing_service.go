package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/retailbill/internal/api"
	"github.com/mmynk/retailbill/internal/auth"
	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/form"
	"github.com/mmynk/retailbill/internal/metrics"
	"github.com/mmynk/retailbill/internal/middleware"
	"github.com/mmynk/retailbill/internal/models"
	"github.com/mmynk/retailbill/internal/storage"
)

var _ api.BillingHandler = (*BillingService)(nil)

var errNoSession = errors.New("no session in context")

// BillingService implements the Connect BillingService.
type BillingService struct {
	store   storage.Store
	tokens  *auth.TokenManager
	metrics *metrics.Metrics
}

// NewBillingService creates a BillingService. m may be nil.
func NewBillingService(store storage.Store, tokens *auth.TokenManager, m *metrics.Metrics) *BillingService {
	return &BillingService{store: store, tokens: tokens, metrics: m}
}

// StartSession creates a session with an empty bill and returns its token.
func (s *BillingService) StartSession(ctx context.Context, req *connect.Request[api.StartSessionRequest]) (*connect.Response[api.StartSessionResponse], error) {
	expiresAt := time.Now().Add(s.tokens.TTL()).Truncate(time.Second)
	session := &models.Session{ExpiresAt: expiresAt.Unix()}

	if err := s.store.CreateSession(ctx, session); err != nil {
		slog.Error("StartSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.tokens.Issue(session.ID, expiresAt)
	if err != nil {
		slog.Error("Failed to issue session token", "session_id", session.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.metrics.SessionStarted()
	slog.Info("Session started", "session_id", session.ID, "expires_at", expiresAt)

	return connect.NewResponse(&api.StartSessionResponse{
		SessionID: session.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}), nil
}

// AddItem parses the submitted fields and appends the item to the bill.
// Rejected submissions leave the bill unchanged.
func (s *BillingService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	sessionID, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	item, err := form.Parse(form.Fields{
		Name:     req.Msg.Name,
		Price:    req.Msg.Price,
		Quantity: req.Msg.Quantity,
	})
	if err != nil {
		reason := metrics.ReasonParse
		if errors.Is(err, billing.ErrInvalidItem) {
			reason = metrics.ReasonValidation
		}
		s.metrics.ItemRejected(reason)
		slog.Debug("AddItem rejected", "session_id", sessionID, "reason", reason, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("%s: %w", form.Message(err), err))
	}

	count, err := s.store.AppendItem(ctx, sessionID, item)
	if err != nil {
		return nil, storeError("AddItem", sessionID, err)
	}

	s.metrics.ItemAdded()
	slog.Debug("Item added",
		"session_id", sessionID,
		"name", item.Name(),
		"unit_price", item.UnitPrice().String(),
		"quantity", item.Quantity(),
		"item_count", count,
	)

	return connect.NewResponse(&api.AddItemResponse{ItemCount: count}), nil
}

// GetBill computes the session's bill and returns its amounts and receipt.
func (s *BillingService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	sessionID, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, sessionID)
	if err != nil {
		return nil, storeError("GetBill", sessionID, err)
	}

	summary, receipt := bill.ComputeAndRender()
	s.metrics.BillRendered()

	items := bill.Items()
	resp := &api.GetBillResponse{
		Items:     make([]api.Item, len(items)),
		Subtotal:  summary.Subtotal.StringFixed(2),
		Discount:  summary.Discount.StringFixed(2),
		Tax:       summary.Tax.StringFixed(2),
		NetAmount: summary.NetAmount.StringFixed(2),
		Receipt:   receipt,
	}
	for i, item := range items {
		resp.Items[i] = api.Item{
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().StringFixed(2),
			Quantity:  item.Quantity(),
			LineTotal: item.LineTotal().StringFixed(2),
		}
	}

	return connect.NewResponse(resp), nil
}

// ResetBill removes every item from the session's bill.
func (s *BillingService) ResetBill(ctx context.Context, req *connect.Request[api.ResetBillRequest]) (*connect.Response[api.ResetBillResponse], error) {
	sessionID, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.ResetBill(ctx, sessionID); err != nil {
		return nil, storeError("ResetBill", sessionID, err)
	}

	slog.Info("Bill reset", "session_id", sessionID)
	return connect.NewResponse(&api.ResetBillResponse{}), nil
}

func sessionFrom(ctx context.Context) (string, error) {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errNoSession)
	}
	return sessionID, nil
}

func storeError(op, sessionID string, err error) error {
	if errors.Is(err, storage.ErrSessionNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(op+" failed", "session_id", sessionID, "error", err)
	return connect.NewError(connect.CodeInternal, err)
}
