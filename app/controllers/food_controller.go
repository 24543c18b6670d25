package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/foodshare/app/repositories"
	"github.com/shashiranjanraj/foodshare/app/resources"
	"github.com/shashiranjanraj/foodshare/app/services"
	"github.com/shashiranjanraj/foodshare/pkg/bind"
	"github.com/shashiranjanraj/foodshare/pkg/resource"
	"github.com/shashiranjanraj/foodshare/pkg/response"
)

type FoodController struct {
	service *services.ListingService
	stats   *services.StatsService
}

func NewFoodController() *FoodController {
	return &FoodController{
		service: services.NewListingService(),
		stats:   services.NewStatsService(),
	}
}

func (c *FoodController) Index(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)
	filter := repositories.ListingFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Page:   page,
		Limit:  limit,
	}

	listings, pagination, err := c.service.List(actor, filter)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Paginated(w, resources.Listings(listings), pagination)
}

func (c *FoodController) Store(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.CreateListingInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	listing, err := c.service.Create(actor, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Created(w, resources.Listing(listing))
}

func (c *FoodController) Show(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	listing, err := c.service.Get(actor, id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	resource.New(&resources.ListingResource{}, listing).Respond(w)
}

func (c *FoodController) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	var input services.UpdateListingInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	listing, err := c.service.Update(actor, id, input)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, resources.Listing(listing))
}

func (c *FoodController) Destroy(w http.ResponseWriter, r *http.Request) {
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
	response.Success(w, map[string]string{"message": "Listing deleted"})
}

// UploadImage accepts a multipart upload under the "image" field and stores
// it on the configured disk.
func (c *FoodController) UploadImage(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, ok := paramID(r)
	if !ok {
		response.NotFound(w)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, map[string]string{"image": "The image field is required."})
		return
	}
	defer file.Close()

	listing, err := c.service.UploadImage(actor, id, header.Filename, file)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, resources.Listing(listing))
}

// Available lists requestable food: Available status, not yet expired,
// soonest expiry first. Gated to NGO/Volunteer and Admin at the route level.
func (c *FoodController) Available(w http.ResponseWriter, r *http.Request) {
	listings, err := c.service.Available()
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, resources.Listings(listings))
}

func (c *FoodController) DashboardStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}

	stats, err := c.stats.Dashboard(actor)
	if err != nil {
		respondError(w, r, err)
		return
	}
	response.Success(w, stats)
}
