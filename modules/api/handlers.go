package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/olegnck404/mao-admin-panel/modules/attendance"
	"github.com/olegnck404/mao-admin-panel/modules/dashboard"
	"github.com/olegnck404/mao-admin-panel/modules/rewards"
	"github.com/olegnck404/mao-admin-panel/modules/task"
	"github.com/olegnck404/mao-admin-panel/modules/user"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	userPort       user.UserPort
	taskPort       task.TaskPort
	attendancePort attendance.AttendancePort
	rewardsPort    rewards.RewardsPort
	dashboardPort  dashboard.DashboardPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	userPort user.UserPort,
	taskPort task.TaskPort,
	attendancePort attendance.AttendancePort,
	rewardsPort rewards.RewardsPort,
	dashboardPort dashboard.DashboardPort,
) *Handlers {
	return &Handlers{
		userPort:       userPort,
		taskPort:       taskPort,
		attendancePort: attendancePort,
		rewardsPort:    rewardsPort,
		dashboardPort:  dashboardPort,
	}
}

// Login handles user authentication.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	resp, err := h.userPort.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// ListUsers returns all users.
func (h *Handlers) ListUsers(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	resp, err := h.userPort.ListUsers(c.UserContext(), caller)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetUser returns a single user by id.
func (h *Handlers) GetUser(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	info, err := h.userPort.GetUser(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(info)
}

// CreateUser creates a new user account.
func (h *Handlers) CreateUser(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	var req user.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Caller = caller

	info, err := h.userPort.CreateUser(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(info)
}

// DeleteUser removes a user account.
func (h *Handlers) DeleteUser(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.userPort.DeleteUser(c.UserContext(), caller, c.Params("id")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListTasks returns the tasks visible to the caller.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	resp, err := h.taskPort.ListTasks(c.UserContext(), caller)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// GetTask returns a single task if visible to the caller.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	t, err := h.taskPort.GetTask(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

// CreateTask creates a new task.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Caller = caller

	t, err := h.taskPort.CreateTask(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// UpdateTask applies a partial update to a task.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Caller = caller
	req.TaskID = c.Params("id")

	t, err := h.taskPort.UpdateTask(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

// ToggleCompletion flips one user's completion on a task. The target
// user defaults to the caller when the body omits userName.
func (h *Handlers) ToggleCompletion(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	var body ToggleBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}
	userName := body.User
	if userName == "" {
		userName = caller.Name
	}

	t, err := h.taskPort.ToggleCompletion(c.UserContext(), &task.ToggleCompletionRequest{
		Caller:   caller,
		TaskID:   c.Params("id"),
		UserName: userName,
	})
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

// ToggleAll marks a shared task done for everyone, or resets it when
// already fully complete.
func (h *Handlers) ToggleAll(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	t, err := h.taskPort.ToggleAll(c.UserContext(), &task.ToggleAllRequest{
		Caller: caller,
		TaskID: c.Params("id"),
	})
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(t)
}

// DeleteTask removes a task.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.taskPort.DeleteTask(c.UserContext(), caller, c.Params("id")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAttendance returns attendance records scoped to the caller's role.
func (h *Handlers) ListAttendance(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	resp, err := h.attendancePort.ListRecords(c.UserContext(), caller)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateAttendance creates an attendance record.
func (h *Handlers) CreateAttendance(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	var req attendance.CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Caller = caller

	rec, err := h.attendancePort.CreateRecord(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// UpdateAttendance updates an attendance record.
func (h *Handlers) UpdateAttendance(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	var req attendance.UpdateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Caller = caller
	req.RecordID = c.Params("id")

	rec, err := h.attendancePort.UpdateRecord(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(rec)
}

// DeleteAttendance removes an attendance record.
func (h *Handlers) DeleteAttendance(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	if err := h.attendancePort.DeleteRecord(c.UserContext(), caller, c.Params("id")); err != nil {
		return h.handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListRewards returns reward and penalty records scoped to the caller's role.
func (h *Handlers) ListRewards(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	resp, err := h.rewardsPort.ListRecords(c.UserContext(), caller)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateReward creates a reward or penalty record.
func (h *Handlers) CreateReward(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	var req rewards.CreateRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.Caller = caller

	rec, err := h.rewardsPort.CreateRecord(c.UserContext(), &req)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// Dashboard returns the aggregated overview.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	caller, ok := callerFromCtx(c)
	if !ok {
		return unauthorized(c)
	}
	resp, err := h.dashboardPort.Overview(c.UserContext(), caller)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}

// handleError maps service errors to HTTP responses. Errors cross the
// message bus as plain strings, so mapping is by known message text.
func (h *Handlers) handleError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid email or password",
		})
	case strings.Contains(errStr, "forbidden"):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error:   "forbidden",
			Message: "You do not have permission to perform this action",
		})
	case isValidationMessage(errStr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: errStr,
		})
	case strings.Contains(errStr, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})
	case strings.Contains(errStr, "already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "User with this email already exists",
		})
	case strings.Contains(errStr, "unavailable"):
		log.Printf("[api] Store error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "store_unavailable",
			Message: "The data store is temporarily unavailable",
		})
	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

// isValidationMessage reports whether the error text matches a known
// input validation failure.
func isValidationMessage(errStr string) bool {
	for _, fragment := range []string{
		"title is required",
		"invalid task priority",
		"due date is required",
		"no assignees",
		"mixes personal and global",
		"non-assignee",
		"unknown assignee",
		"all fields are required",
		"invalid role",
		"invalid email format",
		"invalid reward record",
	} {
		if strings.Contains(errStr, fragment) {
			return true
		}
	}
	return false
}
