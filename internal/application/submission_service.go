// internal/application/submission_service.go
package application

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

// DefaultShippingFee is the flat delivery fee charged per request.
const DefaultShippingFee float64 = 15000

type Submission struct {
	Contact       domain.ContactInfo
	PaymentMethod domain.PaymentMethod
}

type SubmissionService struct {
	api         ports.BorrowRequestAPIPort
	validate    *validator.Validate
	shippingFee float64
	logger      *zap.Logger
}

func NewSubmissionService(api ports.BorrowRequestAPIPort, shippingFee float64, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		api:         api,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		shippingFee: shippingFee,
		logger:      logger,
	}
}

// Submit turns the cart's selected books into a PENDING borrow request.
// On success the whole cart is cleared; on failure the cart is untouched.
// Submissions against one cart run one at a time, so a second submit waits
// for the first and then finds the selection already gone.
func (s *SubmissionService) Submit(ctx context.Context, id *domain.Identity, cart *CartStore, sub Submission) (*domain.BorrowRequest, error) {
	if id == nil || id.UserID <= 0 {
		return nil, domain.ErrNoIdentity
	}
	sub, err := s.normalize(sub)
	if err != nil {
		return nil, err
	}

	cart.checkout.Lock()
	defer cart.checkout.Unlock()

	selected := cart.SelectedItems()
	if len(selected) == 0 {
		return nil, domain.ErrEmptySelection
	}
	bookIDs := make([]int64, 0, len(selected))
	for _, it := range selected {
		bookIDs = append(bookIDs, it.ID)
	}

	created, err := s.api.CreateBorrowRequest(ctx, &domain.NewBorrowRequest{
		UserID:        id.UserID,
		BookIDs:       bookIDs,
		Contact:       sub.Contact,
		PaymentMethod: sub.PaymentMethod,
		ShippingFee:   s.shippingFee,
	})
	if err != nil {
		return nil, err
	}
	// The request exists now; a failed clear must not read as a failed submit.
	if err := cart.ClearCart(ctx); err != nil {
		s.logger.Warn("Borrow request created but cart not cleared",
			zap.Int64("request_id", created.ID),
			zap.String("namespace", cart.Namespace()),
			zap.Error(err),
		)
	}

	s.logger.Info("Borrow request submitted",
		zap.Int64("request_id", created.ID),
		zap.Int64("user_id", id.UserID),
		zap.Int("books", len(bookIDs)),
	)
	return created, nil
}

func (s *SubmissionService) normalize(sub Submission) (Submission, error) {
	sub.Contact.Name = strings.TrimSpace(sub.Contact.Name)
	sub.Contact.Phone = strings.TrimSpace(sub.Contact.Phone)
	sub.Contact.Address = strings.TrimSpace(sub.Contact.Address)
	sub.Contact.Note = strings.TrimSpace(sub.Contact.Note)
	if sub.PaymentMethod == "" {
		sub.PaymentMethod = domain.PaymentCOD
	}

	fields := map[string]string{}
	if err := s.validate.Struct(sub.Contact); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return sub, err
		}
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = reason(fe)
		}
	}
	if !sub.PaymentMethod.Valid() {
		fields["paymentMethod"] = "must be COD or QR"
	}
	if len(fields) > 0 {
		return sub, &domain.ValidationError{Fields: fields}
	}
	return sub, nil
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
