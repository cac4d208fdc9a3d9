package mapper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/actions-api/internal/domain"
	"github.com/pocketledger/actions-api/internal/mapper"
	"github.com/pocketledger/actions-api/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPaginated(t *testing.T) {
	next := "http://core/accounts/?page=3"
	prev := "http://core/accounts/?page=1"
	list := &upstream.List[upstream.Account]{
		Count:    42,
		Next:     &next,
		Previous: &prev,
		Results: []upstream.Account{
			{ID: uuid.New(), Name: "Checking"},
			{ID: uuid.New(), Name: "Savings"},
		},
	}

	page := mapper.ToPaginated(list, mapper.ToAccountDTO)
	assert.Equal(t, int64(42), page.Count)
	assert.Equal(t, &next, page.Next)
	assert.Equal(t, &prev, page.Previous)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Checking", page.Items[0].Name)
	assert.Equal(t, "Savings", page.Items[1].Name)
}

func TestToPaginated_EmptyResultsYieldEmptySlice(t *testing.T) {
	page := mapper.ToPaginated(&upstream.List[upstream.Account]{}, mapper.ToAccountDTO)
	assert.NotNil(t, page.Items)
	assert.Len(t, page.Items, 0)
}

func TestToAccountDTO(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()
	account := &upstream.Account{
		ID:          id,
		Name:        "Checking",
		TypeID:      2,
		Currency:    "NOK",
		Balance:     "1250.50",
		Institution: "DNB",
		IsArchived:  true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	dto := mapper.ToAccountDTO(account)
	assert.Equal(t, id, dto.ID)
	assert.Equal(t, "Checking", dto.Name)
	assert.Equal(t, 2, dto.TypeID)
	assert.Equal(t, "1250.50", dto.Balance)
	assert.Equal(t, "DNB", dto.Institution)
	assert.True(t, dto.IsArchived)
}

func TestToAccountPatch_PreservesNilFields(t *testing.T) {
	name := "Renamed"
	patch := mapper.ToAccountPatch(&domain.PatchAccountRequest{Name: &name})
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Renamed", *patch.Name)
	assert.Nil(t, patch.TypeID)
	assert.Nil(t, patch.Institution)
	assert.Nil(t, patch.IsArchived)
}

func TestToWebhookWrite_NewWebhooksStartActive(t *testing.T) {
	write := mapper.ToWebhookWrite(&domain.CreateWebhookRequest{
		URL:    "https://example.com/hook",
		Events: []string{"account.updated"},
	})
	assert.True(t, write.IsActive)
	assert.Equal(t, "https://example.com/hook", write.URL)
}

func TestToWebhookWriteFromUpdate_RespectsIsActive(t *testing.T) {
	write := mapper.ToWebhookWriteFromUpdate(&domain.UpdateWebhookRequest{
		URL:      "https://example.com/hook",
		Events:   []string{"account.updated"},
		IsActive: false,
	})
	assert.False(t, write.IsActive)
}

func TestToBudgetDTO(t *testing.T) {
	accountID := uuid.New()
	budget := &upstream.Budget{
		ID:        uuid.New(),
		Name:      "Groceries",
		Amount:    "5000.00",
		Spent:     "1200.00",
		Currency:  "NOK",
		AccountID: &accountID,
	}

	dto := mapper.ToBudgetDTO(budget)
	assert.Equal(t, "Groceries", dto.Name)
	assert.Equal(t, "1200.00", dto.Spent)
	require.NotNil(t, dto.AccountID)
	assert.Equal(t, accountID, *dto.AccountID)
}

func TestToListParams(t *testing.T) {
	params := mapper.ToListParams(domain.ListOptions{
		Page:     3,
		PageSize: 20,
		Search:   "grocery",
		Ordering: "-created_at",
	})
	q := params.Query()
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "20", q.Get("page_size"))
	assert.Equal(t, "grocery", q.Get("search"))
	assert.Equal(t, "-created_at", q.Get("ordering"))
}

func TestToCurrencyDTO(t *testing.T) {
	dto := mapper.ToCurrencyDTO(&upstream.Currency{
		Code:          "NOK",
		Name:          "Norwegian Krone",
		Symbol:        "kr",
		DecimalPlaces: 2,
		IsActive:      true,
	})
	assert.Equal(t, "NOK", dto.Code)
	assert.Equal(t, 2, dto.DecimalPlaces)
	assert.True(t, dto.IsActive)
}
