// Package api defines the BillingService wire contract: procedure names,
// request and response messages, and typed Connect client and handler
// constructors.
//
// Messages are plain structs carried with a JSON codec.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"
)

// ServiceName is the fully-qualified name of the billing service.
const ServiceName = "retailbill.v1.BillingService"

// Procedure paths.
const (
	StartSessionProcedure = "/" + ServiceName + "/StartSession"
	AddItemProcedure      = "/" + ServiceName + "/AddItem"
	GetBillProcedure      = "/" + ServiceName + "/GetBill"
	ResetBillProcedure    = "/" + ServiceName + "/ResetBill"
)

type StartSessionRequest struct{}

type StartSessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AddItemRequest carries the form fields as typed by the user.
type AddItemRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

type AddItemResponse struct {
	ItemCount int `json:"item_count"`
}

type GetBillRequest struct{}

// Item is one rendered line item. Amounts are fixed two-decimal strings.
type Item struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type GetBillResponse struct {
	Items     []Item `json:"items"`
	Subtotal  string `json:"subtotal"`
	Discount  string `json:"discount"`
	Tax       string `json:"tax"`
	NetAmount string `json:"net_amount"`
	Receipt   string `json:"receipt"`
}

type ResetBillRequest struct{}

type ResetBillResponse struct{}

// MaxRequestBytes limits the size of a request message the handler reads.
const MaxRequestBytes = 64 << 10

// BillingHandler is implemented by the billing service.
type BillingHandler interface {
	StartSession(context.Context, *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error)
	AddItem(context.Context, *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error)
	GetBill(context.Context, *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error)
	ResetBill(context.Context, *connect.Request[ResetBillRequest]) (*connect.Response[ResetBillResponse], error)
}

// NewBillingHandler builds an HTTP handler serving svc. It returns the path
// prefix to mount the handler on.
func NewBillingHandler(svc BillingHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON(), connect.WithReadMaxBytes(MaxRequestBytes)}, opts...)

	mux := http.NewServeMux()
	mux.Handle(StartSessionProcedure, connect.NewUnaryHandler(StartSessionProcedure, svc.StartSession, opts...))
	mux.Handle(AddItemProcedure, connect.NewUnaryHandler(AddItemProcedure, svc.AddItem, opts...))
	mux.Handle(GetBillProcedure, connect.NewUnaryHandler(GetBillProcedure, svc.GetBill, opts...))
	mux.Handle(ResetBillProcedure, connect.NewUnaryHandler(ResetBillProcedure, svc.ResetBill, opts...))

	return "/" + ServiceName + "/", mux
}

// BillingClient calls a remote billing service.
type BillingClient struct {
	startSession *connect.Client[StartSessionRequest, StartSessionResponse]
	addItem      *connect.Client[AddItemRequest, AddItemResponse]
	getBill      *connect.Client[GetBillRequest, GetBillResponse]
	resetBill    *connect.Client[ResetBillRequest, ResetBillResponse]
}

// NewBillingClient returns a client for the service at baseURL.
func NewBillingClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillingClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &BillingClient{
		startSession: connect.NewClient[StartSessionRequest, StartSessionResponse](httpClient, baseURL+StartSessionProcedure, opts...),
		addItem:      connect.NewClient[AddItemRequest, AddItemResponse](httpClient, baseURL+AddItemProcedure, opts...),
		getBill:      connect.NewClient[GetBillRequest, GetBillResponse](httpClient, baseURL+GetBillProcedure, opts...),
		resetBill:    connect.NewClient[ResetBillRequest, ResetBillResponse](httpClient, baseURL+ResetBillProcedure, opts...),
	}
}

func (c *BillingClient) StartSession(ctx context.Context, req *connect.Request[StartSessionRequest]) (*connect.Response[StartSessionResponse], error) {
	return c.startSession.CallUnary(ctx, req)
}

func (c *BillingClient) AddItem(ctx context.Context, req *connect.Request[AddItemRequest]) (*connect.Response[AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *BillingClient) GetBill(ctx context.Context, req *connect.Request[GetBillRequest]) (*connect.Response[GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *BillingClient) ResetBill(ctx context.Context, req *connect.Request[ResetBillRequest]) (*connect.Response[ResetBillResponse], error) {
	return c.resetBill.CallUnary(ctx, req)
}
