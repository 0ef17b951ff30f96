package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/backend"
	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
	"github.com/ElephaSolutions/rtoappfrontend/internal/service"
)

type formData struct {
	pageData
	Form     *service.VehicleForm
	ReturnTo string
}

type dateCell struct {
	Display    string
	Badge      service.Validity
	BadgeClass string
}

type tableRow struct {
	VehicleNo     string
	ContactNumber string
	Cells         []dateCell
}

type tableData struct {
	pageData
	Rows       []tableRow
	Query      string
	Page       service.PageState
	ShownFrom  int
	ShownTo    int
	TotalItems int
	EditForm   *formData
	LoadError  bool
}

// ShowVehicleForm renders the empty record-entry form.
func (h *PageHandler) ShowVehicleForm(c *gin.Context) {
	data := formData{
		pageData: h.basePageData(c),
		Form:     &service.VehicleForm{},
		ReturnTo: "/vehicle",
	}
	c.HTML(http.StatusOK, "vehicle_form.html", data)
}

// allowedReturns are the pages a form submission may bounce back to.
var allowedReturns = map[string]bool{
	"/vehicle":      true,
	"/vehicle/view": true,
}

// SubmitVehicleForm validates and saves one record. Validation failures and
// backend failures re-render the form with the entered values retained; only
// a confirmed save clears the form and redirects with a success notice.
func (h *PageHandler) SubmitVehicleForm(c *gin.Context) {
	form := &service.VehicleForm{
		VehicleNo:      c.PostForm("vehicleNo"),
		FitnessValid:   c.PostForm("fitnessValid"),
		InsuranceValid: c.PostForm("insuranceValid"),
		PermitValid:    c.PostForm("permitValid"),
		TaxValid:       c.PostForm("taxValid"),
		PucValid:       c.PostForm("pucValid"),
		ContactNumber:  c.PostForm("contactNumber"),
	}

	returnTo := c.PostForm("return")
	if !allowedReturns[returnTo] {
		returnTo = "/vehicle"
	}

	data := formData{
		pageData: h.basePageData(c),
		Form:     form,
		ReturnTo: returnTo,
	}

	// Validation runs before any network call
	if err := form.Validate(); err != nil {
		data.Alert = err.Error()
		c.HTML(http.StatusUnprocessableEntity, "vehicle_form.html", data)
		return
	}

	err := h.client.SaveVehicle(c.Request.Context(), cookiesFrom(c), form.ToRecord())
	if errors.Is(err, backend.ErrUnauthorized) {
		h.redirectToLogin(c)
		return
	}
	if err != nil {
		h.logger.Error("Failed to save vehicle record", zap.Error(err),
			zap.String("vehicle_number", form.VehicleNo))
		data.Alert = "Failed to save vehicle record. Please try again."
		c.HTML(http.StatusBadGateway, "vehicle_form.html", data)
		return
	}

	params := url.Values{}
	params.Set("notice", "Vehicle record has been saved successfully.")
	h.redirect(c, returnTo, params)
}

// VehicleTable renders one backend page of records with validity badges,
// an in-page search filter, pagination controls, and an optional edit
// overlay pre-filled from the selected row.
func (h *PageHandler) VehicleTable(c *gin.Context) {
	page := 1
	if raw := c.Query(constants.PageQueryParam); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}
	query := c.Query("q")

	data := tableData{
		pageData: h.basePageData(c),
		Query:    query,
		Page:     service.NewPageState(page, 0),
	}

	listPage, err := h.client.ListVehicles(c.Request.Context(), cookiesFrom(c), page, constants.ItemsPerPage)
	if errors.Is(err, backend.ErrUnauthorized) {
		h.redirectToLogin(c)
		return
	}
	if err != nil {
		h.logger.Error("Failed to load vehicles", zap.Error(err))
		data.LoadError = true
		if data.Alert == "" {
			data.Alert = "Failed to load vehicle data"
		}
		c.HTML(http.StatusOK, "vehicle_table.html", data)
		return
	}

	state := service.NewPageState(page, listPage.TotalVehicles)
	if state.Page != page {
		// Requested page is out of range; reload at the clamped page so the
		// rows and the pagination line agree.
		params := url.Values{}
		params.Set(constants.PageQueryParam, strconv.Itoa(state.Page))
		if query != "" {
			params.Set("q", query)
		}
		h.redirect(c, "/vehicle/view", params)
		return
	}
	data.Page = state
	data.TotalItems = listPage.TotalVehicles

	now := time.Now()
	filtered := service.FilterVehicles(listPage.Vehicles, query)
	for _, vehicle := range filtered {
		row := tableRow{
			VehicleNo:     vehicle.VehicleNumber,
			ContactNumber: vehicle.ContactNumber,
		}
		for _, date := range []string{
			vehicle.FcExpiryDate,
			vehicle.InsuranceExpiryDate,
			vehicle.PermitExpiryDate,
			vehicle.TaxDueDate,
			vehicle.PollutionCertificateExpiryDate,
		} {
			badge := service.ValidityForDate(date, now)
			row.Cells = append(row.Cells, dateCell{
				Display:    service.DisplayDate(date),
				Badge:      badge,
				BadgeClass: badgeClass(badge),
			})
		}
		data.Rows = append(data.Rows, row)
	}
	data.ShownFrom = state.StartIndex()
	data.ShownTo = state.EndIndex(len(data.Rows))

	// Edit reopens the record form as an overlay, pre-filled from the
	// matching row on this page.
	if editNo := c.Query("edit"); editNo != "" {
		for i := range listPage.Vehicles {
			if listPage.Vehicles[i].VehicleNumber == editNo {
				data.EditForm = &formData{
					pageData: data.pageData,
					Form:     service.FormFromRecord(&listPage.Vehicles[i]),
					ReturnTo: "/vehicle/view",
				}
				break
			}
		}
	}

	c.HTML(http.StatusOK, "vehicle_table.html", data)
}

// DeleteVehicle removes a record and redirects back to the table page, so
// the rows shown always reflect a fresh backend fetch.
func (h *PageHandler) DeleteVehicle(c *gin.Context) {
	vehicleNumber := c.PostForm("vehicle_number")
	page := c.PostForm(constants.PageQueryParam)

	params := url.Values{}
	if page != "" {
		params.Set(constants.PageQueryParam, page)
	}

	if vehicleNumber == "" {
		params.Set("alert", "No vehicle selected for deletion")
		h.redirect(c, "/vehicle/view", params)
		return
	}

	if err := h.client.DeleteVehicle(c.Request.Context(), cookiesFrom(c), vehicleNumber); err != nil {
		h.logger.Error("Failed to delete vehicle", zap.Error(err),
			zap.String("vehicle_number", vehicleNumber))
		params.Set("alert", fmt.Sprintf("Failed to delete vehicle %s", vehicleNumber))
		h.redirect(c, "/vehicle/view", params)
		return
	}

	params.Set("notice", "Vehicle record deleted successfully")
	h.redirect(c, "/vehicle/view", params)
}
