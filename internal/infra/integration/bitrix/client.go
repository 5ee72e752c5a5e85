// Package bitrix is the CRM webhook client. Leads are delivered best-effort:
// the caller logs failures and never surfaces them to the end user.
package bitrix

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const addLeadMethod = "crm.lead.add.json"

// A slow CRM must not stall the response to the end user.
const requestTimeout = 10 * time.Second

type Client struct {
	webhookURL string
	httpClient *http.Client
}

// NewClient builds a client for a Bitrix24 inbound webhook base URL,
// e.g. https://example.bitrix24.kz/rest/1/token.
func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: strings.TrimRight(webhookURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// CreateLead posts a lead record and returns the CRM lead ID.
func (c *Client) CreateLead(ctx context.Context, fields LeadFields) (int, error) {
	if c.webhookURL == "" {
		return 0, fmt.Errorf("bitrix: webhook URL not configured")
	}

	reqBody := addLeadRequest{
		Fields: addLeadFields{
			Title:    fields.Title,
			Name:     fields.Name,
			LastName: fields.LastName,
			Comments: fields.Comments,
			SourceID: fields.SourceID,
		},
		Params: map[string]string{"REGISTER_SONET_EVENT": "Y"},
	}
	if fields.Phone != "" {
		reqBody.Fields.Phone = []multiField{{Value: fields.Phone, ValueType: "WORK"}}
	}
	if fields.Email != "" {
		reqBody.Fields.Email = []multiField{{Value: fields.Email, ValueType: "WORK"}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("bitrix: marshal lead: %w", err)
	}

	url := c.webhookURL + "/" + addLeadMethod
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("bitrix: create lead: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("bitrix: create lead: %d - %s", resp.StatusCode, string(body))
	}

	var result addLeadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("bitrix: decode response: %w", err)
	}
	if result.Result == 0 {
		return 0, fmt.Errorf("bitrix: lead not created: %s", string(body))
	}

	return result.Result, nil
}
