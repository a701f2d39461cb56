package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	commonhttp "winhouse-quote/internal/common/http"
)

// ErrNoData is returned when Zoho answers 2xx without a record.
var ErrNoData = errors.New("zoho: no data in response")

type CRMClient struct {
	oauthToken string
	baseURL    string
	httpClient *commonhttp.Client
}

// Lead is the subset of the Zoho Leads module written by the quote tool.
type Lead struct {
	ID          string `json:"id,omitempty"`
	LastName    string `json:"Last_Name"`
	FirstName   string `json:"First_Name,omitempty"`
	Email       string `json:"Email"`
	Phone       string `json:"Phone,omitempty"`
	Company     string `json:"Company,omitempty"`
	Designation string `json:"Designation,omitempty"`
	Source      string `json:"Lead_Source,omitempty"`
	Description string `json:"Description,omitempty"`
}

type writeResponse struct {
	Data []struct {
		Code    string `json:"code"`
		Details struct {
			ID string `json:"id"`
		} `json:"details"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"data"`
}

// NewCRMClient builds a client for baseURL (for example
// https://www.zohoapis.com/crm/v2).
func NewCRMClient(baseURL, oauthToken string, timeout time.Duration) *CRMClient {
	return &CRMClient{
		oauthToken: oauthToken,
		baseURL:    baseURL,
		httpClient: commonhttp.NewClient(timeout),
	}
}

func (c *CRMClient) authHeader() map[string]string {
	return map[string]string{"Authorization": "Zoho-oauthtoken " + c.oauthToken}
}

// CreateLead inserts lead and returns the Zoho record id.
func (c *CRMClient) CreateLead(ctx context.Context, lead *Lead) (string, error) {
	body, err := c.httpClient.PostJSON(ctx, c.baseURL+"/Leads",
		map[string]interface{}{"data": []Lead{*lead}}, c.authHeader())
	if err != nil {
		return "", fmt.Errorf("failed to create lead: %w", err)
	}
	return parseWriteResponse(body)
}

// UpdateLead overwrites the given fields on an existing lead.
func (c *CRMClient) UpdateLead(ctx context.Context, leadID string, lead *Lead) error {
	payload, err := json.Marshal(map[string]interface{}{"data": []Lead{*lead}})
	if err != nil {
		return fmt.Errorf("failed to marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut,
		fmt.Sprintf("%s/Leads/%s", c.baseURL, url.PathEscape(leadID)), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to update lead (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// SearchLeads finds leads by email. Zoho answers 204 when nothing matches.
func (c *CRMClient) SearchLeads(ctx context.Context, email string) ([]Lead, error) {
	endpoint := fmt.Sprintf("%s/Leads/search?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.oauthToken)

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to search leads (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Data []Lead `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Data, nil
}

func parseWriteResponse(body []byte) (string, error) {
	var resp writeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(resp.Data) == 0 {
		return "", ErrNoData
	}
	if resp.Data[0].Status != "success" {
		return "", fmt.Errorf("lead write failed: %s", resp.Data[0].Message)
	}
	return resp.Data[0].Details.ID, nil
}
