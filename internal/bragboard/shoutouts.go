package bragboard

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// Endpoint paths of the "my posts" lookups, tried in this order by the feed store.
const (
	PathMyShoutouts    = "/auth/shoutouts/my"
	PathMyShoutoutsAlt = "/auth/shoutouts/my-posts"
)

func shoutoutPath(prefix string, id model.ID, suffix string) string {
	return prefix + "/" + url.PathEscape(id.String()) + suffix
}

// FetchFeed retrieves the shoutout feed, newest first.
func (c *Client) FetchFeed(ctx context.Context) ([]model.Shoutout, error) {
	const op = "fetch feed"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/auth/shoutouts/feed"})
	if err != nil {
		return nil, err
	}
	shoutouts, err := model.ParseShoutouts(body)
	return shoutouts, parseErr(op, err)
}

// CreateShoutout posts a new shoutout as multipart form data.
func (c *Client) CreateShoutout(ctx context.Context, post model.NewShoutout) (model.Shoutout, error) {
	const op = "create shoutout"
	body, contentType, err := shoutoutForm(post)
	if err != nil {
		return model.Shoutout{}, parseErr(op, err)
	}

	resp, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/auth/shoutouts",
		body:        body,
		contentType: contentType,
		idempotent:  true,
	})
	if err != nil {
		return model.Shoutout{}, err
	}
	created, err := model.ParseShoutout(resp)
	return created, parseErr(op, err)
}

func shoutoutForm(post model.NewShoutout) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	if err := w.WriteField("message", post.Message); err != nil {
		return nil, "", fmt.Errorf("failed to encode message: %w", err)
	}
	if ids := model.UniqueIDs(post.TaggedUserIDs); len(ids) > 0 {
		parts := make([]string, 0, len(ids))
		for _, id := range ids {
			parts = append(parts, id.String())
		}
		if err := w.WriteField("tagged_user_ids", strings.Join(parts, ",")); err != nil {
			return nil, "", fmt.Errorf("failed to encode tags: %w", err)
		}
	}
	if img := post.Image; img != nil && len(img.Data) > 0 {
		name := filepath.Base(img.Filename)
		if name == "." || name == "/" || name == "" {
			name = "image"
		}
		contentType := img.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(img.Data)
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to encode image: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("failed to encode image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to encode form: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// EditShoutout replaces the message of one of the caller's shoutouts.
func (c *Client) EditShoutout(ctx context.Context, id model.ID, message string) error {
	body, err := jsonBody(map[string]string{"message": message})
	if err != nil {
		return parseErr("edit shoutout", err)
	}
	_, err = c.do(ctx, request{
		op:          "edit shoutout",
		method:      http.MethodPut,
		path:        shoutoutPath("/shoutouts", id, ""),
		body:        body,
		contentType: "application/json",
	})
	return err
}

// DeleteShoutout removes a shoutout (own post, or any post for admins).
func (c *Client) DeleteShoutout(ctx context.Context, id model.ID) error {
	_, err := c.do(ctx, request{op: "delete shoutout", method: http.MethodDelete, path: shoutoutPath("/shoutouts", id, "")})
	return err
}

// React adds one emoji reaction to a shoutout.
func (c *Client) React(ctx context.Context, id model.ID, emoji string) error {
	body, err := jsonBody(map[string]string{"emoji": emoji})
	if err != nil {
		return parseErr("react", err)
	}
	_, err = c.do(ctx, request{
		op:          "react",
		method:      http.MethodPost,
		path:        shoutoutPath("/auth/shoutouts", id, "/react"),
		body:        body,
		contentType: "application/json",
	})
	return err
}

// ReportShoutout flags a shoutout for moderation.
func (c *Client) ReportShoutout(ctx context.Context, id model.ID) error {
	_, err := c.do(ctx, request{op: "report shoutout", method: http.MethodPut, path: shoutoutPath("/auth/shoutouts", id, "/report")})
	return err
}

// FetchMyShoutouts retrieves the caller's shoutouts from the primary endpoint.
func (c *Client) FetchMyShoutouts(ctx context.Context) ([]model.Shoutout, error) {
	return c.fetchShoutouts(ctx, "fetch my shoutouts", PathMyShoutouts)
}

// FetchMyShoutoutsAlt retrieves the caller's shoutouts from the alternate endpoint.
func (c *Client) FetchMyShoutoutsAlt(ctx context.Context) ([]model.Shoutout, error) {
	return c.fetchShoutouts(ctx, "fetch my shoutouts", PathMyShoutoutsAlt)
}

// FetchReportedShoutouts lists shoutouts awaiting moderation (admin only).
func (c *Client) FetchReportedShoutouts(ctx context.Context) ([]model.Shoutout, error) {
	return c.fetchShoutouts(ctx, "fetch reported shoutouts", "/auth/shoutouts/reported")
}

func (c *Client) fetchShoutouts(ctx context.Context, op, path string) ([]model.Shoutout, error) {
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	shoutouts, err := model.ParseShoutouts(body)
	return shoutouts, parseErr(op, err)
}

// FetchComments retrieves the comments of one shoutout.
func (c *Client) FetchComments(ctx context.Context, id model.ID) ([]model.Comment, error) {
	const op = "fetch comments"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: shoutoutPath("/auth/shoutouts", id, "/comments")})
	if err != nil {
		return nil, err
	}
	comments, err := model.ParseComments(body, id)
	return comments, parseErr(op, err)
}

// CreateComment adds a comment to a shoutout.
func (c *Client) CreateComment(ctx context.Context, id model.ID, content string) (model.Comment, error) {
	const op = "create comment"
	body, err := jsonBody(map[string]string{"content": content})
	if err != nil {
		return model.Comment{}, parseErr(op, err)
	}
	resp, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        shoutoutPath("/auth/shoutouts", id, "/comments"),
		body:        body,
		contentType: "application/json",
		idempotent:  true,
	})
	if err != nil {
		return model.Comment{}, err
	}
	comment, err := model.ParseComment(resp, id)
	return comment, parseErr(op, err)
}

// ImageURL resolves a shoutout's image path against the API root.
func (c *Client) ImageURL(s model.Shoutout) (string, error) {
	return ResolveImageURL(c.baseURL, s.ImageURL)
}

// ResolveImageURL turns a relative upload path into an absolute URL.
func ResolveImageURL(baseURL, imagePath string) (string, error) {
	if strings.TrimSpace(imagePath) == "" {
		return "", fmt.Errorf("shoutout has no image")
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	ref, err := url.Parse(imagePath)
	if err != nil {
		return "", fmt.Errorf("invalid image path: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}
