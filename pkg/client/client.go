package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/gridstore/network-store/api/v1"
)

// Client talks to a network store over HTTP. Lookups return (nil, nil) when the remote
// answers 404. No call is retried; see Retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithToken sends token as a bearer token on every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// NewClient returns a client of the server at baseURL, like http://localhost:8000.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}
	c := &Client{
		baseURL:    u.JoinPath("/api/v1").String(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in any) Outcome {
	op := method + " " + path

	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return Outcome{Kind: TransportError, Err: &RemoteTransportError{Op: op, Err: err}}
		}
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, &body)
	if err != nil {
		return Outcome{Kind: TransportError, Err: &RemoteTransportError{Op: op, Err: err}}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}

	resp, err := c.httpClient.Do(req)
	outcome := classify(op, resp, err)
	zap.S().Named("client").Debugw("remote call", "op", op, "outcome", outcome.Kind.String())
	return outcome
}

// lookup decodes a successful outcome into out. An absent outcome yields (false, nil).
func lookup(o Outcome, out any) (bool, error) {
	switch o.Kind {
	case Success:
		if out != nil && len(o.Body) > 0 {
			if err := json.Unmarshal(o.Body, out); err != nil {
				return false, &RemoteDecodeError{Op: o.Op, Body: o.Body, Err: err}
			}
		}
		return true, nil
	case Absent:
		return false, nil
	default:
		return false, o.Err
	}
}

// command decodes a successful outcome into out. Any other outcome, 404 included, is an error.
func command(o Outcome, out any) error {
	if o.Kind == Absent {
		return o.Err
	}
	_, err := lookup(o, out)
	return err
}

func variantPath(networkID uuid.UUID, variantNum int) string {
	return "/networks/" + networkID.String() + "/variants/" + strconv.Itoa(variantNum)
}

func equipmentPath(networkID uuid.UUID, variantNum int, equipmentID string) string {
	return variantPath(networkID, variantNum) + "/equipment/" + url.PathEscape(equipmentID)
}

func (c *Client) CreateNetwork(ctx context.Context, networkID uuid.UUID) (*v1.Variant, error) {
	var v v1.Variant
	if err := command(c.do(ctx, http.MethodPost, "/networks", nil, v1.CreateNetworkRequest{NetworkID: &networkID}), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteNetwork(ctx context.Context, networkID uuid.UUID) error {
	return command(c.do(ctx, http.MethodDelete, "/networks/"+networkID.String(), nil, nil), nil)
}

// ListVariants returns nil when the network does not exist.
func (c *Client) ListVariants(ctx context.Context, networkID uuid.UUID) ([]v1.Variant, error) {
	var variants []v1.Variant
	found, err := lookup(c.do(ctx, http.MethodGet, "/networks/"+networkID.String()+"/variants", nil, nil), &variants)
	if err != nil || !found {
		return nil, err
	}
	return variants, nil
}

func (c *Client) CloneVariant(ctx context.Context, networkID uuid.UUID, req v1.CloneVariantRequest) (*v1.Variant, error) {
	var v v1.Variant
	if err := command(c.do(ctx, http.MethodPost, "/networks/"+networkID.String()+"/variants", nil, req), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Client) DeleteVariant(ctx context.Context, networkID uuid.UUID, variantNum int) error {
	return command(c.do(ctx, http.MethodDelete, variantPath(networkID, variantNum), nil, nil), nil)
}

// GetAttributes returns nil when the equipment is not visible in the variant.
// An empty equipmentType matches any type.
func (c *Client) GetAttributes(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID, equipmentType string) (*v1.Equipment, error) {
	var query url.Values
	if equipmentType != "" {
		query = url.Values{"type": {equipmentType}}
	}
	var eq v1.Equipment
	found, err := lookup(c.do(ctx, http.MethodGet, equipmentPath(networkID, variantNum, equipmentID), query, nil), &eq)
	if err != nil || !found {
		return nil, err
	}
	return &eq, nil
}

func (c *Client) PutAttributes(ctx context.Context, networkID uuid.UUID, variantNum int, eq v1.Equipment) error {
	return command(c.do(ctx, http.MethodPut, equipmentPath(networkID, variantNum, eq.ID), nil, eq), nil)
}

// RemoveEquipment returns the removal events: the equipment, then the switches removed with it.
func (c *Client) RemoveEquipment(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string) ([]v1.RemovalEvent, error) {
	var events []v1.RemovalEvent
	if err := command(c.do(ctx, http.MethodDelete, equipmentPath(networkID, variantNum, equipmentID), nil, nil), &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetLimits returns nil when the variant does not exist.
func (c *Client) GetLimits(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string) (*v1.Limits, error) {
	var l v1.Limits
	found, err := lookup(c.do(ctx, http.MethodGet, equipmentPath(networkID, variantNum, equipmentID)+"/limits", nil, nil), &l)
	if err != nil || !found {
		return nil, err
	}
	return &l, nil
}

func (c *Client) PutLimits(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string, limits v1.Limits) error {
	return command(c.do(ctx, http.MethodPut, equipmentPath(networkID, variantNum, equipmentID)+"/limits", nil, limits), nil)
}

// GetTapChangerSteps returns nil when the tap changer does not exist.
func (c *Client) GetTapChangerSteps(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID, tapChangerType string) (*v1.TapChangerSteps, error) {
	var tc v1.TapChangerSteps
	path := equipmentPath(networkID, variantNum, equipmentID) + "/tap-changers/" + url.PathEscape(tapChangerType) + "/steps"
	found, err := lookup(c.do(ctx, http.MethodGet, path, nil, nil), &tc)
	if err != nil || !found {
		return nil, err
	}
	return &tc, nil
}

func (c *Client) PutTapChangerSteps(ctx context.Context, networkID uuid.UUID, variantNum int, tc v1.TapChangerSteps) error {
	path := equipmentPath(networkID, variantNum, tc.EquipmentID) + "/tap-changers/" + url.PathEscape(tc.TapChangerType) + "/steps"
	return command(c.do(ctx, http.MethodPut, path, nil, tc), nil)
}

// Migrate runs a migration unit on one variant.
func (c *Client) Migrate(ctx context.Context, unit string, networkID uuid.UUID, variantNum int) (*v1.MigrationReport, error) {
	var r v1.MigrationReport
	path := "/admin/migrations/" + url.PathEscape(unit) + variantPath(networkID, variantNum)
	if err := command(c.do(ctx, http.MethodPost, path, nil, nil), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MigrateNetwork runs a migration unit on every variant of a network.
func (c *Client) MigrateNetwork(ctx context.Context, unit string, networkID uuid.UUID) ([]v1.MigrationReport, error) {
	var reports []v1.MigrationReport
	path := "/admin/migrations/" + url.PathEscape(unit) + "/networks/" + networkID.String()
	if err := command(c.do(ctx, http.MethodPost, path, nil, nil), &reports); err != nil {
		return nil, err
	}
	return reports, nil
}
