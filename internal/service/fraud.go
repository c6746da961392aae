package service

import (
	"strings"

	"github.com/tijara-next/internal/repository"
)

// FraudThresholds bounds the per-IP diversity an order history may show
// before a new submission is flagged.
type FraudThresholds struct {
	MaxPhonesPerIP       int
	MaxGovernoratesPerIP int
}

// FraudChecker classifies new submissions from their IP's order history.
// It only reads; the caller decides what to do with the flag, and only
// at creation time. Existing orders are never reclassified.
type FraudChecker struct {
	orderRepo  repository.OrderRepository
	thresholds FraudThresholds
}

// NewFraudChecker builds a fraud checker.
func NewFraudChecker(orderRepo repository.OrderRepository, thresholds FraudThresholds) *FraudChecker {
	return &FraudChecker{orderRepo: orderRepo, thresholds: thresholds}
}

// IsSuspicious reports whether a submission looks like multi-identity
// abuse: the IP's history plus the new submission spans too many
// distinct phone numbers or governorates. An absent IP never flags;
// there is no history to accumulate against.
//
// False positives from shared IPs or VPNs are accepted; this is an
// approximate signal, not a verdict.
func (c *FraudChecker) IsSuspicious(ip, phoneNumber, governorate string) (bool, error) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return false, nil
	}

	history, err := c.orderRepo.ListByClientIP(ip)
	if err != nil {
		return false, err
	}

	phones := map[string]struct{}{}
	governorates := map[string]struct{}{}
	if p := strings.TrimSpace(phoneNumber); p != "" {
		phones[p] = struct{}{}
	}
	if g := strings.TrimSpace(governorate); g != "" {
		governorates[g] = struct{}{}
	}
	for _, order := range history {
		if p := strings.TrimSpace(order.PhoneNumber); p != "" {
			phones[p] = struct{}{}
		}
		if g := strings.TrimSpace(order.Governorate); g != "" {
			governorates[g] = struct{}{}
		}
	}

	if len(phones) > c.thresholds.MaxPhonesPerIP {
		return true, nil
	}
	if len(governorates) > c.thresholds.MaxGovernoratesPerIP {
		return true, nil
	}
	return false, nil
}
