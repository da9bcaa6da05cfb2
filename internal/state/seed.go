package state

import "qshield/internal/domain"

// SeedLedger returns the entries a fresh install starts with, newest first.
func SeedLedger() []domain.LedgerEntry {
	return []domain.LedgerEntry{
		{
			Timestamp: "2025-09-28 14:32:11",
			Org:       "Company A",
			Action:    domain.ActionModelUpdateSubmitted,
			TxHash:    "0x7f9fade1c0d57a7af66ab4ead79fade1c0d57a7af66ab4ead7c2c2eb7b11a91385",
		},
		{
			Timestamp: "2025-09-28 14:28:45",
			Org:       "Company B",
			Action:    domain.ActionIdentityRegistered,
			TxHash:    "0x3c3f8b6c5d4e2f1a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f1a0b9c8d7e6f5",
		},
		{
			Timestamp: "2025-09-28 14:15:22",
			Org:       "Company C",
			Action:    domain.ActionAggregationCompleted,
			TxHash:    "0xa1b2c3d4e5f6g7h8i9j0k1l2m3n4o5p6q7r8s9t0u1v2w3x4y5z6a7b8c9d0e1f2",
		},
	}
}
