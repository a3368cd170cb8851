package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pizza-text-bot/internal/logger"
)

type (
	// Client talks to the WhatsApp push gateway: outbound messages plus
	// webhook registration for inbound ones.
	Client struct {
		serverAddr string
		login      string
		password   string

		cl *http.Client
	}

	HttpError struct {
		Url     string
		Code    int
		Message string
	}
)

func New(serverAddr, login, password string) *Client {
	return &Client{
		serverAddr: serverAddr,
		login:      login,
		password:   password,

		cl: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout:     30 * time.Second,
				DisableKeepAlives:   false,
				MaxIdleConnsPerHost: 5,
				DisableCompression:  true,
			},
		},
	}
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("Http request failed for %s with code %d and message:\n%s", e.Url, e.Code, e.Message)
}

// SetHook registers the bot webhook the gateway will push messages to.
func (c *Client) SetHook(hookAddr string) (content []byte, err error) {
	data := HookSetupRequest{
		Type: "bot",
		Url:  hookAddr,
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return c.Invoke(context.Background(), http.MethodPost, "/hook/", nil, jsonData)
}

func (c *Client) DeleteHook() (content []byte, err error) {
	return c.Invoke(context.Background(), http.MethodDelete, "/hook/bot/", nil, nil)
}

// Send delivers a text message to a customer phone.
func (c *Client) Send(ctx context.Context, phone, text string) error {
	data := SendRequest{
		Phone: phone,
		Text:  text,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = c.Invoke(ctx, http.MethodPost, "/send/message/", nil, jsonData)

	return err
}

// CheckNumber reports whether the phone is registered on the network.
func (c *Client) CheckNumber(ctx context.Context, phone string) (exists bool, err error) {
	var v = url.Values{}
	v.Add("phone", phone)

	r, err := c.Invoke(ctx, http.MethodGet, "/number/status/", v, nil)
	if err != nil {
		return
	}

	var status NumberStatus
	err = json.Unmarshal(r, &status)
	return status.Exists, err
}

func (c *Client) Invoke(ctx context.Context, method string, methodUrl string, urlParams url.Values, body []byte) (content []byte, err error) {
	methodUrl = strings.Trim(methodUrl, "/")
	reqUrl := c.serverAddr + "/v1/" + methodUrl + "/"
	if urlParams != nil {
		reqUrl += "?" + urlParams.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqUrl, bytes.NewBuffer(body))
	if err != nil {
		logger.Warning("Error while create request for", reqUrl, "with method", method, ":", err)
		return nil, err
	}

	req.SetBasicAuth(c.login, c.password)
	req.Header.Set("Content-Type", "application/json")

	logger.Debug("---> request", req.Method, reqUrl)

	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	logger.Debug("<--- request", req.Method, reqUrl, "with body", bodyBytes)
	if err != nil {
		logger.Warning("Error while read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &HttpError{
			Url:     req.URL.String(),
			Code:    resp.StatusCode,
			Message: string(bodyBytes),
		}
	}

	return bodyBytes, nil
}
