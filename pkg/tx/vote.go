package tx

import (
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// VoteMsg casts a governance vote.
type VoteMsg struct {
	ProposalID int64
	Voter      types.Address
	Option     types.VoteOption
}

// NewVote builds a VoteMsg.
func NewVote(voter types.Address, proposalID int64, option types.VoteOption) (*VoteMsg, error) {
	msg := &VoteMsg{ProposalID: proposalID, Voter: voter, Option: option}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *VoteMsg) Kind() Kind { return KindVote }

func (m *VoteMsg) ValidateBasic() error {
	switch {
	case m.Voter.IsZero():
		return missing(KindVote, "voter")
	case m.ProposalID <= 0:
		return nonPositive(KindVote, "proposal_id", m.ProposalID)
	case !m.Option.Valid():
		return fmt.Errorf("%w: Vote: invalid option %d", ErrEncoding, int64(m.Option))
	}
	return nil
}

func (m *VoteMsg) signObject(hrp string) Object {
	return Object{
		"proposal_id": m.ProposalID,
		"voter":       m.Voter.Bech32(hrp),
		"option":      int64(m.Option),
	}
}

func (m *VoteMsg) appendProto(b []byte) []byte {
	b = appendInt64Field(b, 1, m.ProposalID)
	b = appendBytesField(b, 2, m.Voter[:])
	return appendInt64Field(b, 3, int64(m.Option))
}

func decodeVote(body []byte) (*VoteMsg, error) {
	m := &VoteMsg{}
	err := walkFields(body, func(f protoField) error {
		var err error
		switch f.num {
		case 1:
			m.ProposalID, err = decodeInt64(f)
		case 2:
			m.Voter, err = decodeAddress(f)
		case 3:
			var v int64
			v, err = decodeInt64(f)
			m.Option = types.VoteOption(v)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode Vote: %w", err)
	}
	return m, nil
}
