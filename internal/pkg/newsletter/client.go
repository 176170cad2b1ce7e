// Package newsletter 封装外部邮件服务商的列表成员接口
package newsletter

import (
	"SellerLens/internal/api/config"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client 邮件服务商客户端，未配置地址时所有调用直接报错
type Client struct {
	http   *resty.Client
	listID string
}

func NewClient(cfg *config.NewsletterConfig) *Client {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(15 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.ApiKey).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{
		http:   client,
		listID: cfg.ListID,
	}
}

// Ready 服务商未配置时同步任务直接跳过
func (c *Client) Ready() bool {
	return c.http.BaseURL != "" && c.listID != ""
}

// UpsertMember 把邮箱加入列表，已存在时服务商侧幂等
func (c *Client) UpsertMember(ctx context.Context, email string) error {
	if !c.Ready() {
		return errors.New("newsletter provider is not configured")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"email_address": email,
			"status":        "subscribed",
		}).
		Put(fmt.Sprintf("/lists/%s/members/%s", c.listID, email))
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("newsletter upsert failed: status %d, body %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// RemoveMember 从列表摘除邮箱，404 视为已摘除
func (c *Client) RemoveMember(ctx context.Context, email string) error {
	if !c.Ready() {
		return errors.New("newsletter provider is not configured")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/lists/%s/members/%s", c.listID, email))
	if err != nil {
		return err
	}
	if resp.IsError() && resp.StatusCode() != 404 {
		return fmt.Errorf("newsletter remove failed: status %d, body %s", resp.StatusCode(), resp.String())
	}
	return nil
}
