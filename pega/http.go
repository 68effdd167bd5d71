package pega

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/casebridge-io/casebridge/config"
	"github.com/casebridge-io/casebridge/pkg/errs"
	"github.com/casebridge-io/casebridge/pkg/types"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPClient implements Client over the Pega REST API.
type HTTPClient struct {
	log    *zap.SugaredLogger
	client *resty.Client
}

func NewHTTPClient(cfg config.PegaConfig) *HTTPClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(time.Duration(cfg.Timeout) * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// API key takes precedence over basic auth.
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	} else if cfg.Username != "" {
		client.SetBasicAuth(cfg.Username, cfg.Password)
	}

	return &HTTPClient{
		log:    zap.S(),
		client: client,
	}
}

func (c *HTTPClient) CreateCase(ctx context.Context, caseType string, data types.Map) (types.Map, error) {
	var result types.Map
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(types.Map{"caseTypeID": caseType, "content": data}).
		SetResult(&result).
		Post("/cases")
	if err := c.check(resp, err); err != nil {
		c.log.Errorf("[pega] failed to create case: %v", err)
		return nil, err
	}
	c.log.Infof("[pega] case created: type=%s", caseType)
	return result, nil
}

func (c *HTTPClient) GetCase(ctx context.Context, caseID string) (types.Map, error) {
	var result types.Map
	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/cases/" + caseID)
	if err := c.check(resp, err); err != nil {
		c.log.Errorf("[pega] failed to get case %s: %v", caseID, err)
		return nil, err
	}
	return result, nil
}

func (c *HTTPClient) UpdateCase(ctx context.Context, caseID string, data types.Map) (types.Map, error) {
	var result types.Map
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(data).
		SetResult(&result).
		Put("/cases/" + caseID)
	if err := c.check(resp, err); err != nil {
		c.log.Errorf("[pega] failed to update case %s: %v", caseID, err)
		return nil, err
	}
	c.log.Infof("[pega] case updated: %s", caseID)
	return result, nil
}

func (c *HTTPClient) AddNote(ctx context.Context, caseID string, note string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(types.Map{"content": note}).
		Post("/cases/" + caseID + "/actions/addNote")
	if err := c.check(resp, err); err != nil {
		c.log.Errorf("[pega] failed to add note to case %s: %v", caseID, err)
		return err
	}
	c.log.Infof("[pega] note added to case %s", caseID)
	return nil
}

func (c *HTTPClient) ExecuteAction(ctx context.Context, caseID string, actionID string, data types.Map) error {
	if data == nil {
		data = types.Map{}
	}
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(data).
		Post("/cases/" + caseID + "/actions/" + actionID)
	if err := c.check(resp, err); err != nil {
		c.log.Errorf("[pega] failed to execute action %s on case %s: %v", actionID, caseID, err)
		return err
	}
	c.log.Infof("[pega] action %s executed on case %s", actionID, caseID)
	return nil
}

func (c *HTTPClient) check(resp *resty.Response, err error) error {
	if err != nil {
		return errs.NewUpstreamError(err)
	}
	if resp.IsError() {
		return errs.NewUpstreamError(fmt.Errorf("pega responded with status %d", resp.StatusCode()))
	}
	return nil
}
