package rpc

import (
	"context"
	"fmt"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/schedulist/schedulist/internal/models"
)

// Client is the typed RPC client the editor talks through. Fetched
// collections are validated against the schema before they reach the cache,
// so malformed server responses fail loudly at the boundary instead of
// corrupting local state.
type Client struct {
	listGroups *connect.Client[ListGroupsRequest, ListGroupsResponse]
	reorder    *connect.Client[ReorderRequest, ReorderResponse]
	setHidden  *connect.Client[SetHiddenRequest, SetHiddenResponse]
	delete     *connect.Client[DeleteRequest, DeleteResponse]
	create     *connect.Client[CreateRequest, CreateResponse]
	register   *connect.Client[RegisterRequest, AuthResponse]
	login      *connect.Client[LoginRequest, AuthResponse]

	validate *validator.Validate
}

// NewClient creates a client against baseURL. If token is non-empty it is
// sent as a bearer token on every call.
func NewClient(httpClient connect.HTTPClient, baseURL, token string) *Client {
	opts := []connect.ClientOption{WithCodec()}
	if token != "" {
		opts = append(opts, connect.WithInterceptors(bearerInterceptor(token)))
	}

	return &Client{
		listGroups: connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+ProcedureListGroups, opts...),
		reorder:    connect.NewClient[ReorderRequest, ReorderResponse](httpClient, baseURL+ProcedureReorder, opts...),
		setHidden:  connect.NewClient[SetHiddenRequest, SetHiddenResponse](httpClient, baseURL+ProcedureSetHidden, opts...),
		delete:     connect.NewClient[DeleteRequest, DeleteResponse](httpClient, baseURL+ProcedureDelete, opts...),
		create:     connect.NewClient[CreateRequest, CreateResponse](httpClient, baseURL+ProcedureCreate, opts...),
		register:   connect.NewClient[RegisterRequest, AuthResponse](httpClient, baseURL+ProcedureRegister, opts...),
		login:      connect.NewClient[LoginRequest, AuthResponse](httpClient, baseURL+ProcedureLogin, opts...),
		validate:   validator.New(),
	}
}

// bearerInterceptor adds the session token to outgoing requests.
func bearerInterceptor(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

// FetchGroups fetches the caller's groups with their ordered collections.
func (c *Client) FetchGroups(ctx context.Context) ([]models.Group, error) {
	resp, err := c.listGroups.CallUnary(ctx, connect.NewRequest(&ListGroupsRequest{}))
	if err != nil {
		return nil, err
	}
	if err := c.validate.Struct(resp.Msg); err != nil {
		return nil, fmt.Errorf("malformed collection response: %w", err)
	}
	return resp.Msg.Groups, nil
}

// Reorder sends the full new id sequence for one group.
func (c *Client) Reorder(ctx context.Context, profileID int64, ids []int64) error {
	_, err := c.reorder.CallUnary(ctx, connect.NewRequest(&ReorderRequest{ProfileID: profileID, IDs: ids}))
	return err
}

// SetHidden updates one event type's visibility.
func (c *Client) SetHidden(ctx context.Context, id int64, hidden bool) error {
	_, err := c.setHidden.CallUnary(ctx, connect.NewRequest(&SetHiddenRequest{ID: id, Hidden: hidden}))
	return err
}

// Delete removes one event type.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.delete.CallUnary(ctx, connect.NewRequest(&DeleteRequest{ID: id}))
	return err
}

// Create adds a new event type at the tail of a group's collection.
func (c *Client) Create(ctx context.Context, req *CreateRequest) (*models.EventType, error) {
	resp, err := c.create.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	et := resp.Msg.EventType
	if err := c.validate.Struct(&et); err != nil {
		return nil, fmt.Errorf("malformed create response: %w", err)
	}
	return &et, nil
}

// Register creates an account and returns the session token.
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	resp, err := c.register.CallUnary(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}

// Login authenticates and returns the session token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := c.login.CallUnary(ctx, connect.NewRequest(&LoginRequest{Email: email, Password: password}))
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
