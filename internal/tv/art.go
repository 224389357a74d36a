// Package tv implements the minimal Frame TV art-channel requests the upload
// pipeline needs: send an image, select it as the displayed artwork, and
// delete retired uploads. It is a thin sequential request/reply client, not
// a general TV control plane.
package tv

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	artChannelPath = "/api/v2/channels/com.samsung.art-app.channel"
	clientName     = "frame-automation"
	defaultPort    = 8002

	// Category the TV files app-uploaded artwork under.
	myPhotosCategory = "MY-C0002"

	defaultTimeout = 30 * time.Second
)

var errNotConnected = errors.New("not connected to art channel")

// Client talks to a Frame TV's art channel. Methods are sequential: one
// request, one reply, no retries.
type Client struct {
	addr   string
	dialer *websocket.Dialer
	conn   *websocket.Conn
}

// New creates a client for the TV at addr (host or host:port; the vendor
// websocket port 8002 is assumed when absent).
func New(addr string) *Client {
	return &Client{
		addr: addr,
		dialer: &websocket.Dialer{
			// Frame TVs serve self-signed certificates.
			TLSClientConfig:  &tls.Config{InsecureSkipVerify: true},
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Connect opens the art channel and waits for the TV to announce readiness.
func (c *Client) Connect(ctx context.Context) error {
	host := c.addr
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, strconv.Itoa(defaultPort))
	}

	u := url.URL{
		Scheme:   "wss",
		Host:     host,
		Path:     artChannelPath,
		RawQuery: "name=" + base64.StdEncoding.EncodeToString([]byte(clientName)),
	}

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return fmt.Errorf("connecting to art channel: %w", err)
	}
	c.conn = conn

	// The channel emits ms.channel.connect followed by ms.channel.ready;
	// either means art requests will be accepted.
	for {
		ev, err := c.readEvent(ctx)
		if err != nil {
			_ = conn.Close()
			c.conn = nil
			return fmt.Errorf("waiting for channel ready: %w", err)
		}
		if ev.Event == "ms.channel.ready" || ev.Event == "ms.channel.connect" {
			return nil
		}
	}
}

// Close closes the art channel connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Upload transfers a PNG to the TV and returns the content identifier the TV
// assigned to it.
func (c *Client) Upload(ctx context.Context, png []byte) (string, error) {
	if c.conn == nil {
		return "", errNotConnected
	}

	requestID := uuid.NewString()
	if err := c.request(ctx, map[string]any{
		"request":    "send_image",
		"file_type":  "png",
		"request_id": requestID,
		"id":         requestID,
		"conn_info": map[string]any{
			"d2d_mode":      "socket",
			"connection_id": uuid.NewString(),
			"id":            requestID,
		},
	}); err != nil {
		return "", fmt.Errorf("requesting image transfer: %w", err)
	}

	ready, err := c.waitArtEvent(ctx, "ready_to_use")
	if err != nil {
		return "", fmt.Errorf("waiting for transfer slot: %w", err)
	}

	info, err := ready.connInfo()
	if err != nil {
		return "", fmt.Errorf("parsing transfer endpoint: %w", err)
	}

	if err := sendImageData(ctx, info, png); err != nil {
		return "", fmt.Errorf("transferring image: %w", err)
	}

	added, err := c.waitArtEvent(ctx, "image_added")
	if err != nil {
		return "", fmt.Errorf("waiting for upload confirmation: %w", err)
	}
	if added.ContentID == "" {
		return "", errors.New("upload confirmation carried no content id")
	}
	return added.ContentID, nil
}

// Select makes the uploaded content the displayed artwork.
func (c *Client) Select(ctx context.Context, contentID string) error {
	if c.conn == nil {
		return errNotConnected
	}
	if err := c.request(ctx, map[string]any{
		"request":     "select_image",
		"category_id": myPhotosCategory,
		"content_id":  contentID,
		"show":        true,
		"id":          uuid.NewString(),
	}); err != nil {
		return fmt.Errorf("selecting artwork: %w", err)
	}
	return nil
}

// Delete removes a previously uploaded content from the TV.
func (c *Client) Delete(ctx context.Context, contentID string) error {
	if c.conn == nil {
		return errNotConnected
	}
	if err := c.request(ctx, map[string]any{
		"request": "delete_image_list",
		"content_id_list": []map[string]string{
			{"content_id": contentID},
		},
		"id": uuid.NewString(),
	}); err != nil {
		return fmt.Errorf("deleting artwork: %w", err)
	}
	return nil
}

// request emits an art_app_request with the payload JSON-encoded into the
// data field, the envelope the art channel expects.
func (c *Client) request(ctx context.Context, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}
	deadline := time.Now().Add(defaultTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteJSON(emitMessage{
		Method: "ms.channel.emit",
		Params: emitParams{
			Event: "art_app_request",
			To:    "host",
			Data:  string(data),
		},
	})
}

// readEvent reads the next channel event, honoring the context deadline.
func (c *Client) readEvent(ctx context.Context) (*channelEvent, error) {
	deadline := time.Now().Add(defaultTimeout)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	var ev channelEvent
	if err := c.conn.ReadJSON(&ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// waitArtEvent reads channel events until a d2d_service_message with the
// wanted sub-event arrives. An error sub-event fails immediately.
func (c *Client) waitArtEvent(ctx context.Context, want string) (*artEvent, error) {
	for {
		ev, err := c.readEvent(ctx)
		if err != nil {
			return nil, err
		}
		if ev.Event != "d2d_service_message" {
			continue
		}
		art, err := decodeArtEvent(ev.Data)
		if err != nil {
			return nil, fmt.Errorf("decoding art event: %w", err)
		}
		switch art.Event {
		case want:
			return art, nil
		case "error":
			return nil, fmt.Errorf("tv reported error (code %s)", art.ErrorCode)
		}
	}
}

// sendImageData pushes the image over the side TCP socket the TV opened for
// the transfer: a 4-byte big-endian length, a JSON header, then the raw
// bytes.
func sendImageData(ctx context.Context, info *connInfo, data []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(info.IP, info.Port.String()))
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}

	header, err := json.Marshal(map[string]any{
		"num":        0,
		"total":      1,
		"fileLength": len(data),
		"fileName":   clientName,
		"fileType":   "png",
		"secKey":     info.Key,
		"version":    "0.0.1",
	})
	if err != nil {
		return err
	}

	length := []byte{
		byte(len(header) >> 24),
		byte(len(header) >> 16),
		byte(len(header) >> 8),
		byte(len(header)),
	}
	for _, chunk := range [][]byte{length, header, data} {
		if _, err := conn.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}
