// wechatwork/wechatwork.go
package wechatwork

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultBaseURL 企业微信 webhook 地址
const DefaultBaseURL = "https://qyapi.weixin.qq.com/cgi-bin/webhook/send"

// WeChatWorkMessage 企业微信Webhook消息结构
type WeChatWorkMessage struct {
	MsgType  string           `json:"msgtype"`
	Text     *TextContent     `json:"text,omitempty"`
	Markdown *MarkdownContent `json:"markdown,omitempty"`
}

type TextContent struct {
	Content       string   `json:"content"`
	MentionedList []string `json:"mentioned_list,omitempty"`
}

type MarkdownContent struct {
	Content string `json:"content"`
}

// NotificationSender posts run reports to a group robot. An empty key
// disables it.
type NotificationSender struct {
	WebhookKey string
	BaseURL    string
	Enabled    bool
	Client     *http.Client
}

func NewNotificationSender(webhookKey string) *NotificationSender {
	return &NotificationSender{
		WebhookKey: webhookKey,
		BaseURL:    DefaultBaseURL,
		Enabled:    webhookKey != "",
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (ns *NotificationSender) SendText(content string, mentionedList []string) error {
	if !ns.Enabled {
		return nil
	}
	return ns.send(WeChatWorkMessage{
		MsgType: "text",
		Text: &TextContent{
			Content:       content,
			MentionedList: mentionedList,
		},
	})
}

func (ns *NotificationSender) SendMarkdown(content string) error {
	if !ns.Enabled {
		return nil
	}
	return ns.send(WeChatWorkMessage{
		MsgType:  "markdown",
		Markdown: &MarkdownContent{Content: content},
	})
}

func (ns *NotificationSender) send(message WeChatWorkMessage) error {
	var webhookURL = fmt.Sprintf("%s?key=%s", ns.BaseURL, ns.WebhookKey)

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", message.MsgType, err)
	}

	resp, err := ns.Client.Post(webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	slog.Info("webhook notification sent", "msgtype", message.MsgType)
	return nil
}
