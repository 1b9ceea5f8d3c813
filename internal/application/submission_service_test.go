package application

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/memory"
	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

var validContact = domain.ContactInfo{
	Name:    " Nguyễn Văn A ",
	Phone:   "0901234567",
	Address: "12 Lý Thường Kiệt, Hà Nội",
}

func TestSubmissionService_Submit(t *testing.T) {
	reader := &domain.Identity{UserID: 2, Role: domain.RoleUser}
	boom := &domain.APIError{StatusCode: 503, Message: "down"}

	tests := []struct {
		name      string
		id        *domain.Identity
		books     []domain.BookSummary
		deselect  []int64
		sub       Submission
		mockSetup func(api *ports.MockBorrowRequestAPIPort)
		wantErr   error
		wantCart  []int64
	}{
		{
			name:  "Submits selected books and clears the cart",
			id:    reader,
			books: []domain.BookSummary{bookGo, bookDDIA},
			sub:   Submission{Contact: validContact, PaymentMethod: domain.PaymentQR},
			mockSetup: func(api *ports.MockBorrowRequestAPIPort) {
				api.EXPECT().CreateBorrowRequest(gomock.Any(), &domain.NewBorrowRequest{
					UserID:  2,
					BookIDs: []int64{101, 102},
					Contact: domain.ContactInfo{
						Name:    "Nguyễn Văn A",
						Phone:   "0901234567",
						Address: "12 Lý Thường Kiệt, Hà Nội",
					},
					PaymentMethod: domain.PaymentQR,
					ShippingFee:   DefaultShippingFee,
				}).Return(&domain.BorrowRequest{ID: 9, UserID: 2, Status: domain.RequestPending, BookIDs: []int64{101, 102}}, nil)
			},
			wantCart: []int64{},
		},
		{
			name:     "Partial selection still clears the whole cart",
			id:       reader,
			books:    []domain.BookSummary{bookGo, bookDDIA, bookSoDo},
			deselect: []int64{102},
			sub:      Submission{Contact: validContact},
			mockSetup: func(api *ports.MockBorrowRequestAPIPort) {
				api.EXPECT().CreateBorrowRequest(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req *domain.NewBorrowRequest) (*domain.BorrowRequest, error) {
						assert.Equal(t, []int64{101, 104}, req.BookIDs)
						assert.Equal(t, domain.PaymentCOD, req.PaymentMethod)
						return &domain.BorrowRequest{ID: 10, UserID: 2, Status: domain.RequestPending}, nil
					})
			},
			wantCart: []int64{},
		},
		{
			name:     "Guest cannot submit",
			id:       nil,
			books:    []domain.BookSummary{bookGo},
			sub:      Submission{Contact: validContact},
			wantErr:  domain.ErrNoIdentity,
			wantCart: []int64{101},
		},
		{
			name:     "Nothing selected",
			id:       reader,
			books:    []domain.BookSummary{bookGo},
			deselect: []int64{101},
			sub:      Submission{Contact: validContact},
			wantErr:  domain.ErrEmptySelection,
			wantCart: []int64{101},
		},
		{
			name:  "API failure leaves the cart untouched",
			id:    reader,
			books: []domain.BookSummary{bookGo, bookDDIA},
			sub:   Submission{Contact: validContact},
			mockSetup: func(api *ports.MockBorrowRequestAPIPort) {
				api.EXPECT().CreateBorrowRequest(gomock.Any(), gomock.Any()).Return(nil, boom)
			},
			wantErr:  boom,
			wantCart: []int64{101, 102},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := ports.NewMockBorrowRequestAPIPort(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(api)
			}
			svc := NewSubmissionService(api, DefaultShippingFee, nil)

			ctx := context.Background()
			cart := openTestCart(t, memory.NewCartStore(), tt.id)
			for _, b := range tt.books {
				require.NoError(t, cart.AddToCart(ctx, b))
			}
			for _, id := range tt.deselect {
				require.NoError(t, cart.ToggleSelection(ctx, id))
			}

			created, err := svc.Submit(ctx, tt.id, cart, tt.sub)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Equal(t, domain.RequestPending, created.Status)
			}
			assert.Equal(t, tt.wantCart, ids(cart.Items()))
		})
	}
}

func TestSubmissionService_Validation(t *testing.T) {
	tests := []struct {
		name       string
		sub        Submission
		wantFields []string
	}{
		{
			name:       "Blank contact",
			sub:        Submission{Contact: domain.ContactInfo{Name: "  ", Phone: "", Address: " "}},
			wantFields: []string{"name", "phone", "address"},
		},
		{
			name:       "Unknown payment method",
			sub:        Submission{Contact: validContact, PaymentMethod: "CARD"},
			wantFields: []string{"paymentMethod"},
		},
		{
			name: "Note too long",
			sub: Submission{Contact: domain.ContactInfo{
				Name: "A", Phone: "1", Address: "B", Note: strings.Repeat("x", 501),
			}},
			wantFields: []string{"note"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := ports.NewMockBorrowRequestAPIPort(ctrl)
			svc := NewSubmissionService(api, DefaultShippingFee, nil)

			ctx := context.Background()
			cart := openTestCart(t, memory.NewCartStore(), &domain.Identity{UserID: 2})
			require.NoError(t, cart.AddToCart(ctx, bookGo))

			_, err := svc.Submit(ctx, &domain.Identity{UserID: 2}, cart, tt.sub)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, ve.Fields, f)
			}
			assert.True(t, domain.IsValidation(err))
			assert.Equal(t, []int64{101}, ids(cart.Items()))
		})
	}
}

func TestSubmissionService_DoubleSubmitCallsAPIOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := ports.NewMockBorrowRequestAPIPort(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().CreateBorrowRequest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *domain.NewBorrowRequest) (*domain.BorrowRequest, error) {
			close(started)
			<-release
			assert.Equal(t, domain.PaymentCOD, req.PaymentMethod)
			return &domain.BorrowRequest{ID: 11, UserID: 2, Status: domain.RequestPending}, nil
		}).Times(1)

	svc := NewSubmissionService(api, 0, nil)
	who := &domain.Identity{UserID: 2}
	cart := openTestCart(t, memory.NewCartStore(), who)
	require.NoError(t, cart.AddToCart(context.Background(), bookGo))

	firstDone := make(chan error, 1)
	go func() {
		req, err := svc.Submit(context.Background(), who, cart, Submission{Contact: validContact})
		if err == nil {
			assert.Equal(t, int64(11), req.ID)
		}
		firstDone <- err
	}()
	<-started

	// A second submit with a different payload and its own deadline must not
	// receive the first caller's request.
	secondDone := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		other := Submission{Contact: validContact, PaymentMethod: domain.PaymentQR}
		req, err := svc.Submit(ctx, who, cart, other)
		assert.Nil(t, req)
		secondDone <- err
	}()

	time.Sleep(20 * time.Millisecond)
	close(release)

	require.NoError(t, <-firstDone)
	assert.ErrorIs(t, <-secondDone, domain.ErrEmptySelection)
	assert.Empty(t, cart.Items())
}
