package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/petmercado/petmercado/internal/app"
	"github.com/petmercado/petmercado/internal/domain"
)

// RecordResponse is the API representation of a moderated record. Exactly
// one payload object is present, matching the kind.
type RecordResponse struct {
	ID               string `json:"id" doc:"Unique identifier"`
	OwnerID          string `json:"owner_id" doc:"Creator of the record"`
	Kind             string `json:"kind" doc:"Record kind"`
	Status           string `json:"status" doc:"Lifecycle state"`
	ModerationReason string `json:"moderation_reason,omitempty" doc:"Reason given on denial or cancellation"`
	CreatedAt        string `json:"created_at" doc:"Creation timestamp (ISO 8601)"`
	StatusChangedAt  string `json:"status_changed_at" doc:"Last transition timestamp (ISO 8601)"`

	Campaign   *CampaignBody   `json:"campaign,omitempty"`
	Indication *IndicationBody `json:"indication,omitempty"`
	Feedback   *FeedbackBody   `json:"feedback,omitempty"`
	Contract   *ContractBody   `json:"contract,omitempty"`
	Product    *ProductBody    `json:"product,omitempty"`
}

type CampaignBody struct {
	Title     string `json:"title" doc:"Campaign title"`
	GoalCents int64  `json:"goal_cents" doc:"Monetary goal in centavos"`
}

type IndicationBody struct {
	Referred        string `json:"referred" doc:"Referred party kind" enum:"cliente,petshop,fornecedor,empresa"`
	CommissionCents int64  `json:"commission_cents,omitempty" doc:"Payout in centavos, set on approval"`
}

type FeedbackBody struct {
	ProviderID string `json:"provider_id" doc:"Reviewed provider"`
	Comment    string `json:"comment" doc:"Review text"`
}

type ContractBody struct {
	ProviderID string `json:"provider_id" doc:"Contracted provider"`
	Rating     int    `json:"rating,omitempty" doc:"Rating given after completion"`
}

type ProductBody struct {
	Name       string `json:"name" doc:"Product name"`
	PriceCents int64  `json:"price_cents" doc:"Price in centavos"`
}

const timeFormat = "2006-01-02T15:04:05Z"

func toRecordResponse(r domain.Record) RecordResponse {
	resp := RecordResponse{
		ID:               r.ID,
		OwnerID:          r.OwnerID,
		Kind:             string(r.Kind),
		Status:           string(r.Status),
		ModerationReason: r.ModerationReason,
		CreatedAt:        r.CreatedAt.Format(timeFormat),
		StatusChangedAt:  r.StatusChangedAt.Format(timeFormat),
	}
	switch {
	case r.Campaign != nil:
		resp.Campaign = &CampaignBody{Title: r.Campaign.Title, GoalCents: r.Campaign.GoalCents}
	case r.Indication != nil:
		resp.Indication = &IndicationBody{Referred: string(r.Indication.Referred), CommissionCents: r.Indication.CommissionCents}
	case r.Feedback != nil:
		resp.Feedback = &FeedbackBody{ProviderID: r.Feedback.ProviderID, Comment: r.Feedback.Comment}
	case r.Contract != nil:
		resp.Contract = &ContractBody{ProviderID: r.Contract.ProviderID, Rating: r.Contract.Rating}
	case r.Product != nil:
		resp.Product = &ProductBody{Name: r.Product.Name, PriceCents: r.Product.PriceCents}
	}
	return resp
}

// ProviderResponse is the API representation of a provider profile.
type ProviderResponse struct {
	ID          string   `json:"id" doc:"Unique identifier"`
	Kind        string   `json:"kind" doc:"petshop or fornecedor"`
	Name        string   `json:"name" doc:"Display name"`
	Description string   `json:"description,omitempty" doc:"Free-text description"`
	City        string   `json:"city,omitempty" doc:"City"`
	State       string   `json:"state,omitempty" doc:"State"`
	Categories  []string `json:"categories,omitempty" doc:"Category tags"`
	Verified    bool     `json:"verified" doc:"Verified flag"`
	RatingAvg   float64  `json:"rating_avg" doc:"Running average rating"`
	RatingCount int      `json:"rating_count" doc:"Number of aggregated ratings"`
}

func toProviderResponse(p domain.ProviderProfile) ProviderResponse {
	return ProviderResponse{
		ID:          p.ID,
		Kind:        string(p.Kind),
		Name:        p.Name,
		Description: p.Description,
		City:        p.City,
		State:       p.State,
		Categories:  p.Categories,
		Verified:    p.Verified,
		RatingAvg:   p.RatingAvg,
		RatingCount: p.RatingCount,
	}
}

// ActorHeaders carries the acting identity supplied by the session layer.
// Authentication happens upstream; this adapter only forwards the fact.
type ActorHeaders struct {
	ActorID   string `header:"X-Actor-ID" doc:"Acting identity"`
	ActorRole string `header:"X-Actor-Role" doc:"Acting role" enum:"owner,moderator"`
}

func (h ActorHeaders) actor() domain.Actor {
	return domain.Actor{ID: h.ActorID, Role: domain.Role(h.ActorRole)}
}

// --- Create record ---

type CreateRecordInput struct {
	ActorHeaders
	Body struct {
		Kind       string          `json:"kind" doc:"Record kind" enum:"campaign,indication,feedback,contract,product"`
		Campaign   *CampaignBody   `json:"campaign,omitempty"`
		Indication *IndicationBody `json:"indication,omitempty"`
		Feedback   *FeedbackBody   `json:"feedback,omitempty"`
		Contract   *ContractBody   `json:"contract,omitempty"`
		Product    *ProductBody    `json:"product,omitempty"`
	}
}

type CreateRecordOutput struct {
	Body RecordResponse
}

// --- Get record ---

type GetRecordInput struct {
	ID string `path:"id" doc:"Record ID"`
}

type GetRecordOutput struct {
	Body RecordResponse
}

// --- List records ---

type ListRecordsInput struct {
	Kind    string `query:"kind" required:"false" doc:"Filter by kind" enum:",campaign,indication,feedback,contract,product"`
	Status  string `query:"status" required:"false" doc:"Filter by status"`
	OwnerID string `query:"owner_id" required:"false" doc:"Filter by owner"`
	Limit   int    `query:"limit" required:"false" default:"50" doc:"Max results"`
	Offset  int    `query:"offset" required:"false" default:"0" doc:"Pagination offset"`
}

type ListRecordsOutput struct {
	Body []RecordResponse
}

// --- Transition ---

type TransitionInput struct {
	ActorHeaders
	ID   string `path:"id" doc:"Record ID"`
	Body struct {
		Target string `json:"target" doc:"Target status"`
		Reason string `json:"reason,omitempty" doc:"Moderation reason, required for denials and cancellations"`
	}
}

type TransitionOutput struct {
	Body RecordResponse
}

// --- Rate contract ---

type RateContractInput struct {
	ActorHeaders
	ID   string `path:"id" doc:"Contract ID"`
	Body struct {
		Rating int `json:"rating" minimum:"1" maximum:"5" doc:"Rating from 1 to 5"`
	}
}

type RateContractOutput struct {
	Body ProviderResponse
}

// --- Register provider ---

type CreateProviderInput struct {
	Body struct {
		Kind        string   `json:"kind" doc:"Provider kind" enum:"petshop,fornecedor"`
		Name        string   `json:"name" minLength:"1" maxLength:"255" doc:"Display name"`
		Description string   `json:"description,omitempty" doc:"Free-text description"`
		City        string   `json:"city,omitempty" doc:"City"`
		State       string   `json:"state,omitempty" doc:"State"`
		Categories  []string `json:"categories,omitempty" doc:"Category tags"`
		Verified    bool     `json:"verified,omitempty" doc:"Verified flag"`
	}
}

type CreateProviderOutput struct {
	Body ProviderResponse
}

// --- Search providers ---

type SearchProvidersInput struct {
	Query     string  `query:"q" required:"false" doc:"Free-text query over name, description, categories"`
	Kind      string  `query:"tipo" required:"false" doc:"Provider kind" enum:",petshop,fornecedor"`
	City      string  `query:"cidade" required:"false" doc:"City filter"`
	State     string  `query:"estado" required:"false" doc:"State filter"`
	Category  string  `query:"categoria" required:"false" doc:"Category tag filter"`
	MinRating float64 `query:"avaliacao_minima" required:"false" doc:"Minimum average rating"`
	Verified  bool    `query:"verificados" required:"false" doc:"Verified providers only"`
	OrderBy   string  `query:"ordenar" required:"false" doc:"Sort key" enum:",nome,avaliacao"`
	Page      int     `query:"page" required:"false" default:"1" doc:"1-indexed page number"`
	PageSize  int     `query:"page_size" required:"false" default:"20" doc:"Page size"`
}

type SearchProvidersOutput struct {
	Body SearchResponse
}

// SearchResponse is one page of provider search results.
type SearchResponse struct {
	Items      []ProviderResponse `json:"items" doc:"Providers on this page"`
	Total      int                `json:"total" doc:"Total matches across all pages"`
	Page       int                `json:"page" doc:"1-indexed page number"`
	TotalPages int                `json:"total_pages" doc:"Total page count"`
}

// Services groups the application services the handler exposes.
type Services struct {
	Lifecycle *app.LifecycleService
	Rating    *app.RatingService
	Search    *app.SearchService
	Providers *app.ProviderService
}

// Register adds all marketplace API routes to the Huma API.
func Register(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "create-record",
		Method:      http.MethodPost,
		Path:        "/api/v1/records",
		Summary:     "Create a record in its pending state",
		Tags:        []string{"Records"},
	}, func(ctx context.Context, input *CreateRecordInput) (*CreateRecordOutput, error) {
		record, err := createRecord(ctx, svc.Lifecycle, input)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateRecordOutput{Body: toRecordResponse(record)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-record",
		Method:      http.MethodGet,
		Path:        "/api/v1/records/{id}",
		Summary:     "Get a record by ID",
		Tags:        []string{"Records"},
	}, func(ctx context.Context, input *GetRecordInput) (*GetRecordOutput, error) {
		record, err := svc.Lifecycle.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &GetRecordOutput{Body: toRecordResponse(record)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-records",
		Method:      http.MethodGet,
		Path:        "/api/v1/records",
		Summary:     "List records",
		Tags:        []string{"Records"},
	}, func(ctx context.Context, input *ListRecordsInput) (*ListRecordsOutput, error) {
		filter := domain.ListFilter{
			OwnerID: input.OwnerID,
			Limit:   input.Limit,
			Offset:  input.Offset,
		}
		if input.Kind != "" {
			k := domain.Kind(input.Kind)
			filter.Kind = &k
		}
		if input.Status != "" {
			s := domain.Status(input.Status)
			filter.Status = &s
		}

		records, err := svc.Lifecycle.List(ctx, filter)
		if err != nil {
			return nil, toHumaError(err)
		}

		resp := make([]RecordResponse, len(records))
		for i, r := range records {
			resp[i] = toRecordResponse(r)
		}
		return &ListRecordsOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-record",
		Method:      http.MethodPost,
		Path:        "/api/v1/records/{id}/transitions",
		Summary:     "Move a record to a target status",
		Tags:        []string{"Records"},
	}, func(ctx context.Context, input *TransitionInput) (*TransitionOutput, error) {
		record, err := svc.Lifecycle.Transition(ctx, input.ID,
			domain.Status(input.Body.Target), input.actor(), input.Body.Reason)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &TransitionOutput{Body: toRecordResponse(record)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "rate-contract",
		Method:      http.MethodPost,
		Path:        "/api/v1/contracts/{id}/rating",
		Summary:     "Rate a completed contract",
		Tags:        []string{"Contracts"},
	}, func(ctx context.Context, input *RateContractInput) (*RateContractOutput, error) {
		provider, err := svc.Rating.Rate(ctx, input.ID, input.Body.Rating, input.actor())
		if err != nil {
			return nil, toHumaError(err)
		}
		return &RateContractOutput{Body: toProviderResponse(provider)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-provider",
		Method:      http.MethodPost,
		Path:        "/api/v1/providers",
		Summary:     "Register a provider profile",
		Tags:        []string{"Providers"},
	}, func(ctx context.Context, input *CreateProviderInput) (*CreateProviderOutput, error) {
		profile, err := svc.Providers.Register(ctx, domain.ProviderProfile{
			Kind:        domain.ProviderKind(input.Body.Kind),
			Name:        input.Body.Name,
			Description: input.Body.Description,
			City:        input.Body.City,
			State:       input.Body.State,
			Categories:  input.Body.Categories,
			Verified:    input.Body.Verified,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &CreateProviderOutput{Body: toProviderResponse(profile)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "search-providers",
		Method:      http.MethodGet,
		Path:        "/api/v1/providers",
		Summary:     "Search provider profiles",
		Tags:        []string{"Providers"},
	}, func(ctx context.Context, input *SearchProvidersInput) (*SearchProvidersOutput, error) {
		criteria := domain.Criteria{
			Query:        input.Query,
			Kind:         domain.ProviderKind(input.Kind),
			City:         input.City,
			State:        input.State,
			Category:     input.Category,
			MinRating:    input.MinRating,
			VerifiedOnly: input.Verified,
			OrderBy:      domain.OrderBy(input.OrderBy),
		}

		page, err := svc.Search.Search(ctx, criteria, input.Page, input.PageSize)
		if err != nil {
			return nil, toHumaError(err)
		}

		items := make([]ProviderResponse, len(page.Items))
		for i, p := range page.Items {
			items[i] = toProviderResponse(p)
		}
		return &SearchProvidersOutput{Body: SearchResponse{
			Items:      items,
			Total:      page.Total,
			Page:       page.PageNumber,
			TotalPages: page.TotalPages,
		}}, nil
	})
}

func createRecord(ctx context.Context, svc *app.LifecycleService, input *CreateRecordInput) (domain.Record, error) {
	actor := input.actor()
	body := input.Body

	switch domain.Kind(body.Kind) {
	case domain.KindCampaign:
		if body.Campaign == nil {
			return domain.Record{}, huma.Error422UnprocessableEntity("campaign payload is required")
		}
		return svc.CreateCampaign(ctx, actor, domain.CampaignDetails{
			Title:     body.Campaign.Title,
			GoalCents: body.Campaign.GoalCents,
		})
	case domain.KindIndication:
		if body.Indication == nil {
			return domain.Record{}, huma.Error422UnprocessableEntity("indication payload is required")
		}
		return svc.CreateIndication(ctx, actor, domain.IndicationDetails{
			Referred: domain.ReferralKind(body.Indication.Referred),
		})
	case domain.KindFeedback:
		if body.Feedback == nil {
			return domain.Record{}, huma.Error422UnprocessableEntity("feedback payload is required")
		}
		return svc.CreateFeedback(ctx, actor, domain.FeedbackDetails{
			ProviderID: body.Feedback.ProviderID,
			Comment:    body.Feedback.Comment,
		})
	case domain.KindContract:
		if body.Contract == nil {
			return domain.Record{}, huma.Error422UnprocessableEntity("contract payload is required")
		}
		return svc.CreateContract(ctx, actor, domain.ContractDetails{
			ProviderID: body.Contract.ProviderID,
		})
	case domain.KindProduct:
		if body.Product == nil {
			return domain.Record{}, huma.Error422UnprocessableEntity("product payload is required")
		}
		return svc.CreateProduct(ctx, actor, domain.ProductDetails{
			Name:       body.Product.Name,
			PriceCents: body.Product.PriceCents,
		})
	default:
		return domain.Record{}, huma.Error422UnprocessableEntity("unknown record kind")
	}
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	var statusErr huma.StatusError
	if errors.As(err, &statusErr) {
		return err
	}

	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrProviderNotFound) {
		return huma.Error404NotFound(err.Error())
	}
	if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrAlreadyRated) {
		return huma.Error409Conflict(err.Error())
	}
	if errors.Is(err, domain.ErrReasonRequired) {
		return huma.Error422UnprocessableEntity(err.Error())
	}

	var unauthorized *domain.UnauthorizedError
	if errors.As(err, &unauthorized) {
		return huma.Error403Forbidden(unauthorized.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return huma.Error422UnprocessableEntity(stateErr.Error())
	}

	var ratingErr *domain.InvalidRatingError
	if errors.As(err, &ratingErr) {
		return huma.Error422UnprocessableEntity(ratingErr.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
