package controllers

import (
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/app/resources"
	"github.com/shashiranjanraj/foodshare/app/services"
	"github.com/shashiranjanraj/foodshare/pkg/bind"
	"github.com/shashiranjanraj/foodshare/pkg/resource"
	"github.com/shashiranjanraj/foodshare/pkg/response"
)

type RequestController struct {
	service *services.RequestService
}

func NewRequestController() *RequestController {
	return &RequestController{service: services.NewRequestService()}
}

func (c *RequestController) Index(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)
	foodItem, _ := strconv.ParseUint(r.URL.Query().Get("food_item"), 10, 32)
	filter := repositories.RequestFilter{
		Status:     r.URL.Query().Get("status"),
		FoodItemID: uint(foodItem),
		Page:       page,
		Limit:      limit,
	}

	requests, pagination, err := c.service.List(actor, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Paginated(w, resources.Requests(requests), pagination)
}

func (c *RequestController) Store(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.CreateRequestInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	req, err := c.service.Create(actor, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, resources.Request(req))
}

func (c *RequestController) Show(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	req, err := c.service.Get(actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resource.New(&resources.RequestResource{}, req).Respond(w)
}

func (c *RequestController) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var input services.UpdateRequestInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	req, err := c.service.Update(actor, id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, resources.Request(req))
}

func (c *RequestController) Destroy(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	if err := c.service.Delete(actor, id); err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "Request deleted"})
}

func (c *RequestController) MyRequests(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	requests, err := c.service.MyRequests(actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, resources.Requests(requests))
}

func (c *RequestController) ForMyFood(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	requests, err := c.service.ForMyFood(actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, resources.Requests(requests))
}

func (c *RequestController) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.BulkUpdateInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	count, err := c.service.BulkUpdate(actor, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"message":       "Requests updated",
		"updated_count": count,
	})
}
