package routes

import (
	"errors"
	"strconv"

	"apartlive-server/services"
	"apartlive-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// The /api/view surface hosts the browser's state machine server-side: one
// AppShell per signed-in viewer holding the annotated listing array, with a
// ListingCard per listing for the carousel and the review flow.

// InitView builds a fresh shell for the caller: the listing collection is
// fetched once and every booked flag starts false.
func InitView(ctx iris.Context) {
	claims := jwt.Get(ctx).(*utils.AccessToken)

	user := getUserByID(strconv.FormatUint(uint64(claims.ID), 10), ctx)
	if user == nil {
		return
	}

	shell, err := services.Shells.Open(services.Identity{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(shell.Snapshot())
}

// GetViewApartments returns the shell's annotated listing array.
func GetViewApartments(ctx iris.Context) {
	shell := viewShell(ctx)
	if shell == nil {
		return
	}
	ctx.JSON(shell.Snapshot())
}

// ViewBook books the listing at the given position and returns the updated
// annotation. The flag flips only after the store write succeeded.
func ViewBook(ctx iris.Context) {
	shell, index := shellAndIndex(ctx)
	if shell == nil {
		return
	}

	if err := shell.Book(index); err != nil {
		viewError(err, ctx)
		return
	}

	view, _ := shell.ListingAt(index)
	ctx.JSON(view)
}

// ViewCancel cancels the booking at the given position. Cancelling a listing
// that was never booked is not an error.
func ViewCancel(ctx iris.Context) {
	shell, index := shellAndIndex(ctx)
	if shell == nil {
		return
	}

	if err := shell.Cancel(index); err != nil {
		viewError(err, ctx)
		return
	}

	view, _ := shell.ListingAt(index)
	ctx.JSON(view)
}

// ViewNextPhoto advances the listing's carousel; ViewPrevPhoto steps back.
// Both wrap circularly over the photo sequence.
func ViewNextPhoto(ctx iris.Context) {
	stepPhoto(ctx, true)
}

func ViewPrevPhoto(ctx iris.Context) {
	stepPhoto(ctx, false)
}

func stepPhoto(ctx iris.Context, forward bool) {
	shell, index := shellAndIndex(ctx)
	if shell == nil {
		return
	}

	card, _ := shell.Card(index)
	if card == nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "No listing at that position", ctx)
		return
	}

	var photo int
	if forward {
		photo = card.NextPhoto()
	} else {
		photo = card.PrevPhoto()
	}

	view, _ := shell.ListingAt(index)
	photos := view.Apartment.PhotoURLs()
	url := ""
	if photo < len(photos) {
		url = photos[photo]
	}

	ctx.JSON(iris.Map{"photo": photo, "url": url})
}

// GetViewReviews returns the card's review list, fetching it on first
// access. A failed fetch is surfaced; the card keeps its previous list.
func GetViewReviews(ctx iris.Context) {
	shell, index := shellAndIndex(ctx)
	if shell == nil {
		return
	}

	card, err := shell.Card(index)
	if card == nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "No listing at that position", ctx)
		return
	}
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", "Failed to load reviews", ctx)
		return
	}

	ctx.JSON(card.Reviews())
}

type ViewReviewInput struct {
	Text string `json:"text"`
}

// SubmitViewReview runs the card's gated submission and returns the
// re-fetched list on success.
func SubmitViewReview(ctx iris.Context) {
	shell, index := shellAndIndex(ctx)
	if shell == nil {
		return
	}

	card, _ := shell.Card(index)
	if card == nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "No listing at that position", ctx)
		return
	}

	var input ViewReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := card.SubmitReview(input.Text); err != nil {
		viewError(err, ctx)
		return
	}

	ctx.JSON(card.Reviews())
}

func viewShell(ctx iris.Context) *services.AppShell {
	claims := jwt.Get(ctx).(*utils.AccessToken)
	shell, ok := services.Shells.Get(claims.ID)
	if !ok {
		utils.CreateError(iris.StatusNotFound, "Not Found", "View not initialized; call /api/view/init first.", ctx)
		return nil
	}
	return shell
}

func shellAndIndex(ctx iris.Context) (*services.AppShell, int) {
	shell := viewShell(ctx)
	if shell == nil {
		return nil, 0
	}

	index, err := ctx.Params().GetInt("index")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Error", "Invalid listing position", ctx)
		return nil, 0
	}
	return shell, index
}

// viewError maps the shell and card sentinel errors onto HTTP statuses; any
// other error is a store failure.
func viewError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrLoginToBook),
		errors.Is(err, services.ErrLoginToCancel),
		errors.Is(err, services.ErrLoginToReview):
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", err.Error(), ctx)
	case errors.Is(err, services.ErrNotBooked):
		utils.CreateError(iris.StatusForbidden, "Forbidden", err.Error(), ctx)
	case errors.Is(err, services.ErrEmptyReview):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	case errors.Is(err, services.ErrListingIndex):
		utils.CreateError(iris.StatusNotFound, "Not Found", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}
