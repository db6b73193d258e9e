package opcert

import (
	"fmt"

	"github.com/praostools/praos/envelope"
	"github.com/praostools/praos/internal/canoncbor"
	"github.com/praostools/praos/keys"
)

// CounterEnvelopeType is the text-envelope tag for persisted counters.
const CounterEnvelopeType = "NodeOperationalCertificateIssueCounter"

// IssueCounter pairs the next issue number with the one pool identity it may
// issue certificates for. The count only advances through Issue; persistence
// between issuances belongs to the caller.
type IssueCounter struct {
	count    uint64
	poolVKey keys.VerificationKey[keys.StakePool]
}

// NewIssueCounter binds a counter value to a pool verification key.
func NewIssueCounter(count uint64, poolVKey keys.VerificationKey[keys.StakePool]) IssueCounter {
	return IssueCounter{count: count, poolVKey: poolVKey}
}

// Count is the issue number the next certificate will carry.
func (c IssueCounter) Count() uint64 {
	return c.count
}

// PoolVerificationKey is the pool identity the counter is bound to.
func (c IssueCounter) PoolVerificationKey() keys.VerificationKey[keys.StakePool] {
	return c.poolVKey
}

// Wire shape: a CBOR 2-tuple [count, poolVKey].
type counterWire struct {
	_        struct{} `cbor:",toarray"`
	Count    uint64
	PoolVKey keys.VerificationKey[keys.StakePool]
}

func (c IssueCounter) MarshalCBOR() ([]byte, error) {
	return canoncbor.Marshal(counterWire{Count: c.count, PoolVKey: c.poolVKey})
}

func (c *IssueCounter) UnmarshalCBOR(data []byte) error {
	var w counterWire
	if err := canoncbor.Unmarshal(data, &w); err != nil {
		return &keys.Error{Kind: keys.KindDecode, Type: CounterEnvelopeType,
			Message: "issue counter: malformed CBOR 2-tuple", Cause: err}
	}
	*c = IssueCounter{count: w.Count, poolVKey: w.PoolVKey}
	return nil
}

// ToEnvelope wraps the counter in its text envelope. The description carries
// the next issue number, matching existing persisted files.
func (c IssueCounter) ToEnvelope() (envelope.Envelope, error) {
	raw, err := c.MarshalCBOR()
	if err != nil {
		return envelope.Envelope{}, err
	}
	desc := fmt.Sprintf("Next certificate issue number: %d", c.count)
	return envelope.New(CounterEnvelopeType, desc, raw), nil
}

// IssueCounterFromEnvelope reads a counter from text-envelope bytes.
func IssueCounterFromEnvelope(data []byte) (IssueCounter, error) {
	raw, err := envelope.Decode(data, CounterEnvelopeType)
	if err != nil {
		return IssueCounter{}, err
	}
	var c IssueCounter
	if err := c.UnmarshalCBOR(raw); err != nil {
		return IssueCounter{}, err
	}
	return c, nil
}
