package state

import (
	"encoding/json"
	"fmt"

	"qshield/internal/domain"
)

// DecodeAction builds an action from its wire name and JSON payload.
// Unrecognised names decode to an action the reducer ignores.
func DecodeAction(name string, payload json.RawMessage) (Action, error) {
	var (
		a   Action
		err error
	)
	switch name {
	case TypeSetUser:
		var u *domain.Session
		err = decodePayload(payload, &u)
		a = SetUser{User: u}
	case TypeSetTrainingProgress:
		var p int
		err = decodePayload(payload, &p)
		a = SetTrainingProgress{Progress: p}
	case TypeSetTrainingActive:
		var b bool
		err = decodePayload(payload, &b)
		a = SetTrainingActive{Active: b}
	case TypeSetCertificate:
		var c *domain.Certificate
		err = decodePayload(payload, &c)
		a = SetCertificate{Certificate: c}
	case TypeSetGlobalModel:
		var m domain.GlobalModel
		err = decodePayload(payload, &m)
		a = SetGlobalModel{Model: m}
	case TypeAddLedgerEntry:
		var e domain.LedgerEntry
		err = decodePayload(payload, &e)
		a = AddLedgerEntry{Entry: e}
	case TypeSetLedgerEntries:
		var es []domain.LedgerEntry
		err = decodePayload(payload, &es)
		a = SetLedgerEntries{Entries: es}
	case TypeShowModal:
		var c domain.ModalContent
		err = decodePayload(payload, &c)
		a = ShowModal{Content: c}
	case TypeHideModal:
		a = HideModal{}
	case TypeLogout:
		a = Logout{}
	default:
		a = unknown{name: name}
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", name, err)
	}
	return a, nil
}

func decodePayload(payload json.RawMessage, out any) error {
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, out)
}
