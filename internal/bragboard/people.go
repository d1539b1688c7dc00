package bragboard

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// FetchMe retrieves the authenticated user.
func (c *Client) FetchMe(ctx context.Context) (model.Employee, error) {
	const op = "fetch profile"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/auth/me"})
	if err != nil {
		return model.Employee{}, err
	}
	me, err := model.ParseEmployee(body)
	return me, parseErr(op, err)
}

// FetchEmployees lists colleagues for the tag picker.
func (c *Client) FetchEmployees(ctx context.Context) ([]model.Employee, error) {
	return c.fetchEmployees(ctx, "fetch employees", "/auth/department-employees")
}

// FetchUsers lists every employee visible to an admin.
func (c *Client) FetchUsers(ctx context.Context) ([]model.Employee, error) {
	return c.fetchEmployees(ctx, "fetch users", "/auth/users/")
}

func (c *Client) fetchEmployees(ctx context.Context, op, path string) ([]model.Employee, error) {
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	employees, err := model.ParseEmployees(body)
	return employees, parseErr(op, err)
}

// FetchMetrics retrieves the caller's personal counters.
func (c *Client) FetchMetrics(ctx context.Context) (model.Metrics, error) {
	const op = "fetch metrics"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/metrics/me"})
	if err != nil {
		return model.Metrics{}, err
	}
	metrics, err := model.ParseMetrics(body)
	return metrics, parseErr(op, err)
}

// FetchEmployeeOfMonth retrieves the current announcement. A missing
// announcement is reported as apperr.ErrNotFound.
func (c *Client) FetchEmployeeOfMonth(ctx context.Context) (model.EmployeeOfMonth, error) {
	const op = "fetch employee of the month"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/auth/employee-of-month/"})
	if err != nil {
		return model.EmployeeOfMonth{}, err
	}
	eom, err := model.ParseEmployeeOfMonth(body)
	return eom, parseErr(op, err)
}

// AnnounceEmployeeOfMonth names the employee of the month (admin only).
func (c *Client) AnnounceEmployeeOfMonth(ctx context.Context, employeeID model.ID) (model.EmployeeOfMonth, error) {
	const op = "announce employee of the month"
	if employeeID.IsZero() {
		return model.EmployeeOfMonth{}, apperr.Validation(op, "select an employee")
	}
	// The backend models employee_id as an integer.
	var payload map[string]any
	if n, err := strconv.ParseInt(employeeID.String(), 10, 64); err == nil {
		payload = map[string]any{"employee_id": n}
	} else {
		payload = map[string]any{"employee_id": employeeID.String()}
	}
	body, err := jsonBody(payload)
	if err != nil {
		return model.EmployeeOfMonth{}, parseErr(op, err)
	}
	resp, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/auth/employee-of-month/",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return model.EmployeeOfMonth{}, err
	}
	eom, err := model.ParseEmployeeOfMonth(resp)
	return eom, parseErr(op, err)
}

// FetchNotifications retrieves the broadcast list.
func (c *Client) FetchNotifications(ctx context.Context) ([]model.Notification, error) {
	const op = "fetch notifications"
	body, err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/notifications/"})
	if err != nil {
		return nil, err
	}
	notifications, err := model.ParseNotifications(body)
	return notifications, parseErr(op, err)
}

// SendNotification broadcasts a message to everyone (admin only).
func (c *Client) SendNotification(ctx context.Context, message string) (model.Notification, error) {
	const op = "send notification"
	message = strings.TrimSpace(message)
	if message == "" {
		return model.Notification{}, apperr.Validation(op, "enter a notification message")
	}
	body, err := jsonBody(map[string]string{"message": message})
	if err != nil {
		return model.Notification{}, parseErr(op, err)
	}
	resp, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/notifications/",
		body:        body,
		contentType: "application/json",
		idempotent:  true,
	})
	if err != nil {
		return model.Notification{}, err
	}
	n, err := model.ParseNotification(resp)
	return n, parseErr(op, err)
}

// DeleteNotification removes a broadcast on the server.
func (c *Client) DeleteNotification(ctx context.Context, id model.ID) error {
	_, err := c.do(ctx, request{
		op:     "delete notification",
		method: http.MethodDelete,
		path:   "/notifications/" + url.PathEscape(id.String()),
	})
	return err
}
