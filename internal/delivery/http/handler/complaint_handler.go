package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/pkg/errors"
	"github.com/complaint-map/internal/pkg/utils"
	"github.com/complaint-map/internal/pkg/validator"
	"github.com/complaint-map/internal/repository/upload"
	"github.com/complaint-map/internal/usecase"
	"github.com/complaint-map/internal/usecase/dto"
)

// DefaultNearbyRadius is used when the radius query parameter is missing (degrees)
const DefaultNearbyRadius = 0.005

// ComplaintHandler - complaint submission and lookup
type ComplaintHandler struct {
	complaintUC *usecase.ComplaintUseCase
	logger      *zap.Logger
}

func NewComplaintHandler(complaintUC *usecase.ComplaintUseCase, logger *zap.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		complaintUC: complaintUC,
		logger:      logger,
	}
}

// Submit godoc
// @Summary Submit a complaint
// @Description Stores a citizen report. Accepts JSON, or multipart/form-data with an optional png/jpg/jpeg "photo" file. Intensity is clamped into 1..5.
// @Tags Complaints
// @Accept json
// @Accept mpfd
// @Produce json
// @Param request body dto.SubmitComplaintRequest false "Complaint (JSON body)"
// @Param photo formData file false "Photo (multipart only)"
// @Success 201 {object} utils.SuccessResponse{data=dto.ComplaintCreatedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 415 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/complaints [post]
func (h *ComplaintHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitComplaintRequest

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		if err := parseMultipartComplaint(c, &req); err != nil {
			return utils.SendError(c, err)
		}
	} else if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithCause(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.complaintUC.Submit(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

func parseMultipartComplaint(c *fiber.Ctx, req *dto.SubmitComplaintRequest) error {
	var err error
	req.IssueType = c.FormValue("issue_type")

	if v := c.FormValue("intensity"); v != "" {
		if req.Intensity, err = strconv.Atoi(v); err != nil {
			return errors.ErrValidation.WithDetails(map[string]interface{}{"intensity": "must be an integer"})
		}
	}
	if req.Lat, err = strconv.ParseFloat(c.FormValue("lat"), 64); err != nil {
		return errors.ErrInvalidCoordinates
	}
	if req.Lon, err = strconv.ParseFloat(c.FormValue("lon"), 64); err != nil {
		return errors.ErrInvalidCoordinates
	}
	if v := c.FormValue("description"); v != "" {
		req.Description = &v
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		// no file attached
		return nil
	}
	if !upload.IsAllowedExtension(fh.Filename) {
		return errors.ErrUnsupportedMedia.WithDetails(map[string]interface{}{"photo": fh.Filename})
	}

	f, err := fh.Open()
	if err != nil {
		return errors.ErrInvalidRequest.WithCause(err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, upload.MaxPhotoSize+1))
	if err != nil {
		return errors.ErrInvalidRequest.WithCause(err)
	}
	req.Photo = &dto.PhotoUpload{Filename: fh.Filename, Data: data}
	return nil
}

// List godoc
// @Summary List complaints
// @Description Returns every stored complaint ordered by timestamp
// @Tags Complaints
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.ComplaintListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/complaints [get]
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	result, err := h.complaintUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Get godoc
// @Summary Get a complaint
// @Description Returns one complaint with its severity tier, recommended action and responsible authority
// @Tags Complaints
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.ComplaintDetailResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/complaints/{id} [get]
func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	id, err := complaintID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.complaintUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Nearby godoc
// @Summary Complaints near a point
// @Description Returns complaints whose planar distance in degrees to the point is below radius
// @Tags Complaints
// @Produce json
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param radius query number false "Radius in degrees" default(0.005)
// @Success 200 {object} utils.SuccessResponse{data=dto.NearbyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/complaints/nearby [get]
func (h *ComplaintHandler) Nearby(c *fiber.Ctx) error {
	if c.Query("lat") == "" || c.Query("lon") == "" {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}

	req := dto.NearbyRequest{
		Lat:    c.QueryFloat("lat"),
		Lon:    c.QueryFloat("lon"),
		Radius: c.QueryFloat("radius", DefaultNearbyRadius),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.complaintUC.Nearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Vote godoc
// @Summary Upvote a complaint
// @Tags Complaints
// @Produce json
// @Param id path int true "Complaint ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.VoteResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/complaints/{id}/votes [post]
func (h *ComplaintHandler) Vote(c *fiber.Ctx) error {
	id, err := complaintID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.complaintUC.Vote(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

func complaintID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"id": c.Params("id")})
	}
	return id, nil
}
