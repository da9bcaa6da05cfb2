package domain

import (
	interfaces "qshield/internal/domain/interfaces"
	types "qshield/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Org           = types.Org
	Operation     = types.Operation
	Session       = types.Session
	Participant   = types.Participant
	GlobalModel   = types.GlobalModel
	LedgerEntry   = types.LedgerEntry
	Certificate   = types.Certificate
	TrainingState = types.TrainingState
	ModalAction   = types.ModalAction
	ModalContent  = types.ModalContent
	ModalState    = types.ModalState
	State         = types.State
	Request       = types.Request
	Response      = types.Response
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore = interfaces.KeyValueStore
	Clock         = interfaces.Clock
	Random        = interfaces.Random
	Simulator     = interfaces.Simulator
)

const (
	OpGenerateCert       = types.OpGenerateCert
	OpRegisterBlockchain = types.OpRegisterBlockchain
	OpStartTraining      = types.OpStartTraining
	OpTriggerAggregation = types.OpTriggerAggregation
	OpDownloadModel      = types.OpDownloadModel

	ActionModelUpdateSubmitted = types.ActionModelUpdateSubmitted
	ActionIdentityRegistered   = types.ActionIdentityRegistered
	ActionAggregationCompleted = types.ActionAggregationCompleted

	LedgerTimeLayout    = types.LedgerTimeLayout
	CertificateValidity = types.CertificateValidity
)

var (
	DefaultParticipants = types.DefaultParticipants
	DefaultGlobalModel  = types.DefaultGlobalModel
)
