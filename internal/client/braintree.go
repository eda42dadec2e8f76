package client

import (
	"context"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"

	"go-storefront/internal/config"
)

type BraintreeClient interface {
	// VaultPaymentMethod takes a frontend nonce and creates a customer,
	// returning a permanent payment token.
	VaultPaymentMethod(ctx context.Context, nonce, firstName, lastName, email string) (string, error)

	// ChargeOneTime charges a vaulted payment token for a specific amount
	// and submits it for settlement immediately.
	ChargeOneTime(ctx context.Context, paymentToken string, amount float64) (string, error)
}

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	gateway := braintree.New(
		env,
		cfg.MerchantID,
		cfg.PublicKey,
		cfg.PrivateKey,
	)

	return &braintreeClientImpl{
		gateway: gateway,
	}
}

func (c *braintreeClientImpl) VaultPaymentMethod(ctx context.Context, nonce, firstName, lastName, email string) (string, error) {
	req := &braintree.CustomerRequest{
		PaymentMethodNonce: nonce,
		FirstName:          firstName,
		LastName:           lastName,
		Email:              email,
	}

	customer, err := c.gateway.Customer().Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("vault payment method: %w", err)
	}

	if customer.DefaultPaymentMethod() == nil {
		return "", fmt.Errorf("no default payment method returned from vault")
	}

	return customer.DefaultPaymentMethod().GetToken(), nil
}

func (c *braintreeClientImpl) ChargeOneTime(ctx context.Context, paymentToken string, amount float64) (string, error) {
	// Braintree expects NewDecimal(unscaled, scale); 25.00 USD -> (2500, 2).
	cents := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).IntPart()
	btAmount := braintree.NewDecimal(cents, 2)

	req := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             btAmount,
		PaymentMethodToken: paymentToken,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transaction creation failed: %w", err)
	}

	if tx.Status == braintree.TransactionStatusProcessorDeclined {
		return "", fmt.Errorf("transaction declined by processor: %s", tx.ProcessorResponseText)
	}

	return tx.Id, nil
}
