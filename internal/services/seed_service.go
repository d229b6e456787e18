package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payledger/internal/models/db_models"
	"payledger/internal/models/request_models"
	"payledger/internal/repositories"
)

// Seeder loads demo data into an empty database. Payments go through the
// payment service so seeded balances agree with the seeded history.
type Seeder struct {
	merchantRepo      repositories.MerchantRepository
	paymentMethodRepo repositories.PaymentMethodRepository
	accounts          AccountServiceInterface
	payments          PaymentServiceInterface
	auth              AuthServiceInterface
	log               *zap.Logger
}

func NewSeeder(
	merchantRepo repositories.MerchantRepository,
	paymentMethodRepo repositories.PaymentMethodRepository,
	accounts AccountServiceInterface,
	payments PaymentServiceInterface,
	auth AuthServiceInterface,
	log *zap.Logger,
) *Seeder {
	return &Seeder{
		merchantRepo:      merchantRepo,
		paymentMethodRepo: paymentMethodRepo,
		accounts:          accounts,
		payments:          payments,
		auth:              auth,
		log:               log.Named("seeder"),
	}
}

type seedMerchant struct {
	name, email, holder string
	opening             string
}

var seedMerchants = []seedMerchant{
	{"TechMart", "contact@techmart.com", "TechMart Main", "15000"},
	{"StyleHub", "support@stylehub.com", "StyleHub Wallet", "8000"},
	{"BookNest", "info@booknest.com", "BookNest Central", "6000"},
	{"FoodieBox", "hello@foodiebox.com", "FoodieBox HQ", "12000"},
	{"AutoCare", "service@autocare.com", "AutoCare Finance", "9500"},
}

var seedPaymentMethods = []db_models.PaymentMethod{
	{MethodName: "Credit Card", Provider: "Visa"},
	{MethodName: "Debit Card", Provider: "MasterCard"},
	{MethodName: "UPI", Provider: "Google Pay"},
	{MethodName: "NetBanking", Provider: "ICICI Bank"},
	{MethodName: "Wallet", Provider: "Paytm"},
}

type seedPayment struct {
	reference string
	amount    string
	account   int
	method    int
}

var seedPayments = []seedPayment{
	{"TXN001", "250.75", 0, 0},
	{"TXN004", "300.00", 3, 3},
	{"TXN006", "999.99", 0, 2},
	{"TXN008", "780.00", 2, 1},
	{"TXN009", "110.10", 3, 3},
}

// Seed is a no-op when any merchant already exists.
func (s *Seeder) Seed(ctx context.Context) error {
	_, total, err := s.merchantRepo.FindAll(ctx, 1, 1)
	if err != nil {
		return fmt.Errorf("check merchants: %w", err)
	}
	if total > 0 {
		s.log.Info("database already seeded, skipping")
		return nil
	}

	accountIDs := make([]uuid.UUID, 0, len(seedMerchants))
	merchantIDs := make([]uuid.UUID, 0, len(seedMerchants))
	for _, m := range seedMerchants {
		merchant := &db_models.Merchant{Name: m.name, Email: m.email}
		if err := s.merchantRepo.Insert(ctx, merchant); err != nil {
			return fmt.Errorf("seed merchant %s: %w", m.name, err)
		}
		merchantIDs = append(merchantIDs, merchant.ID)

		opening := decimal.RequireFromString(m.opening)
		account, err := s.accounts.CreateAccount(ctx, request_models.CreateAccountRequest{
			HolderName:     m.holder,
			MerchantID:     merchant.ID,
			OpeningBalance: &opening,
		})
		if err != nil {
			return fmt.Errorf("seed account %s: %w", m.holder, err)
		}
		accountIDs = append(accountIDs, account.ID)
	}
	s.log.Info("seeded merchants and accounts", zap.Int("count", len(seedMerchants)))

	methodIDs := make([]uuid.UUID, 0, len(seedPaymentMethods))
	for i := range seedPaymentMethods {
		method := seedPaymentMethods[i]
		if err := s.paymentMethodRepo.Insert(ctx, &method); err != nil {
			return fmt.Errorf("seed payment method %s: %w", method.MethodName, err)
		}
		methodIDs = append(methodIDs, method.ID)
	}
	s.log.Info("seeded payment methods", zap.Int("count", len(methodIDs)))

	for _, p := range seedPayments {
		_, err := s.payments.MakePayment(ctx, request_models.PaymentRequest{
			AccountID:       accountIDs[p.account],
			PaymentMethodID: methodIDs[p.method],
			Amount:          decimal.RequireFromString(p.amount),
			ReferenceNo:     p.reference,
		})
		if err != nil {
			return fmt.Errorf("seed payment %s: %w", p.reference, err)
		}
	}
	s.log.Info("seeded payments", zap.Int("count", len(seedPayments)))

	techMart, styleHub := merchantIDs[0], merchantIDs[1]
	users := []request_models.RegisterRequest{
		{Username: "admin", Password: "Admin@123", Role: db_models.RoleAdmin},
		{Username: "techmart_user", Password: "User@123", Role: db_models.RoleUser, MerchantID: &techMart},
		{Username: "stylehub_user", Password: "User@123", Role: db_models.RoleUser, MerchantID: &styleHub},
	}
	for _, u := range users {
		if _, err := s.auth.Register(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	s.log.Info("seeded users", zap.Int("count", len(users)))

	return nil
}
