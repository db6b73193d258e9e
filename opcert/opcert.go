// Package opcert implements operational certificate issuance: binding a hot
// KES verification key to a cold stake-pool identity under a monotonically
// increasing issue counter, signed by the cold key.
//
// Issuance is a pure function over its inputs. The sole domain error is a
// mismatch between the counter's bound pool key and the supplied cold
// credential; everything else succeeds deterministically.
package opcert

import (
	"encoding/binary"
	"fmt"

	"github.com/praostools/praos/envelope"
	"github.com/praostools/praos/internal/canoncbor"
	"github.com/praostools/praos/keys"
)

// CertificateEnvelopeType is the text-envelope tag for persisted certificates.
const CertificateEnvelopeType = "NodeOperationalCertificate"

// OperationalCertificate binds a KES hot key to a cold pool identity for the
// KES period it names. Immutable once issued.
type OperationalCertificate struct {
	kesVKey     KesVerificationKey
	issueNumber uint64
	kesPeriod   uint64
	signature   []byte
	coldVKey    keys.VerificationKey[keys.StakePool]
}

// KesVerificationKey is the certified hot key.
func (c OperationalCertificate) KesVerificationKey() KesVerificationKey { return c.kesVKey }

// IssueNumber is the counter value the certificate was issued under.
func (c OperationalCertificate) IssueNumber() uint64 { return c.issueNumber }

// KesPeriod is the KES evolution period the certificate starts at.
func (c OperationalCertificate) KesPeriod() uint64 { return c.kesPeriod }

// Signature is the cold-key signature over the signable payload.
func (c OperationalCertificate) Signature() []byte {
	return append([]byte(nil), c.signature...)
}

// ColdVerificationKey is the issuing pool identity.
func (c OperationalCertificate) ColdVerificationKey() keys.VerificationKey[keys.StakePool] {
	return c.coldVKey
}

// Verify checks the embedded signature against the embedded cold key.
func (c OperationalCertificate) Verify() bool {
	return c.coldVKey.Verify(signablePayload(c.kesVKey, c.issueNumber, c.kesPeriod), c.signature)
}

// ColdCredential is the polymorphic issuing key: a stake-pool signing key
// (plain or extended) or a genesis-delegate extended signing key. The set is
// closed; construct values with the Cold* functions.
type ColdCredential interface {
	coldVerificationKey() keys.VerificationKey[keys.StakePool]
	sign(payload []byte) []byte
}

type coldStakePool struct{ sk keys.SigningKey[keys.StakePool] }

type coldStakePoolExtended struct{ sk keys.SigningKey[keys.StakePoolExtended] }

type coldGenesisDelegateExtended struct {
	sk keys.SigningKey[keys.GenesisDelegateExtended]
}

// ColdStakePoolKey wraps a plain stake-pool signing key.
func ColdStakePoolKey(sk keys.SigningKey[keys.StakePool]) ColdCredential {
	return coldStakePool{sk: sk}
}

// ColdStakePoolExtendedKey wraps an extended stake-pool signing key.
func ColdStakePoolExtendedKey(sk keys.SigningKey[keys.StakePoolExtended]) ColdCredential {
	return coldStakePoolExtended{sk: sk}
}

// ColdGenesisDelegateExtendedKey wraps a genesis-delegate extended signing
// key, for certificates issued under a genesis delegation.
func ColdGenesisDelegateExtendedKey(sk keys.SigningKey[keys.GenesisDelegateExtended]) ColdCredential {
	return coldGenesisDelegateExtended{sk: sk}
}

func (c coldStakePool) coldVerificationKey() keys.VerificationKey[keys.StakePool] {
	return c.sk.VerificationKey()
}

func (c coldStakePool) sign(payload []byte) []byte { return c.sk.Sign(payload) }

func (c coldStakePoolExtended) coldVerificationKey() keys.VerificationKey[keys.StakePool] {
	vk, err := keys.CastVerificationKey[keys.StakePool](c.sk.VerificationKey())
	if err != nil {
		panic("opcert: stake-pool extended cast: " + err.Error())
	}
	return vk
}

func (c coldStakePoolExtended) sign(payload []byte) []byte { return c.sk.Sign(payload) }

func (c coldGenesisDelegateExtended) coldVerificationKey() keys.VerificationKey[keys.StakePool] {
	deleg, err := keys.CastVerificationKey[keys.GenesisDelegate](c.sk.VerificationKey())
	if err != nil {
		panic("opcert: genesis-delegate extended cast: " + err.Error())
	}
	vk, err := keys.CastVerificationKey[keys.StakePool](deleg)
	if err != nil {
		panic("opcert: genesis-delegate relabel cast: " + err.Error())
	}
	return vk
}

func (c coldGenesisDelegateExtended) sign(payload []byte) []byte { return c.sk.Sign(payload) }

// KeyMismatchError reports that the cold credential does not resolve to the
// pool key the counter is bound to.
type KeyMismatchError struct {
	Expected keys.VerificationKey[keys.StakePool]
	Supplied keys.VerificationKey[keys.StakePool]
}

func (e *KeyMismatchError) Error() string {
	return fmt.Sprintf("operational certificate issue: counter is bound to pool key %s but the cold credential resolves to %s",
		e.Expected.Hash(), e.Supplied.Hash())
}

// Issue produces a certificate for hot key kesVKey at kesPeriod, signed by
// cold, and the advanced counter. The input counter is unchanged; on success
// the certificate embeds the old count and the returned counter holds
// count+1 under the same pool key.
func Issue(
	kesVKey KesVerificationKey,
	cold ColdCredential,
	kesPeriod uint64,
	counter IssueCounter,
) (OperationalCertificate, IssueCounter, error) {
	supplied := cold.coldVerificationKey()
	if !supplied.Equal(counter.poolVKey) {
		return OperationalCertificate{}, IssueCounter{}, &KeyMismatchError{
			Expected: counter.poolVKey,
			Supplied: supplied,
		}
	}

	payload := signablePayload(kesVKey, counter.count, kesPeriod)
	cert := OperationalCertificate{
		kesVKey:     kesVKey,
		issueNumber: counter.count,
		kesPeriod:   kesPeriod,
		signature:   cold.sign(payload),
		coldVKey:    supplied,
	}
	next := IssueCounter{count: counter.count + 1, poolVKey: counter.poolVKey}
	return cert, next, nil
}

// signablePayload is kesVKey || bigEndian64(issueNumber) ||
// bigEndian64(kesPeriod).
func signablePayload(kesVKey KesVerificationKey, issueNumber, kesPeriod uint64) []byte {
	payload := make([]byte, KesVerificationKeySize+16)
	copy(payload, kesVKey[:])
	binary.BigEndian.PutUint64(payload[KesVerificationKeySize:], issueNumber)
	binary.BigEndian.PutUint64(payload[KesVerificationKeySize+8:], kesPeriod)
	return payload
}

// Wire shape: a CBOR 2-tuple [[kesVKey, issueNumber, kesPeriod, signature],
// coldVKey].
type certBodyWire struct {
	_           struct{} `cbor:",toarray"`
	KesVKey     KesVerificationKey
	IssueNumber uint64
	KesPeriod   uint64
	Signature   []byte
}

type certWire struct {
	_        struct{} `cbor:",toarray"`
	Body     certBodyWire
	ColdVKey keys.VerificationKey[keys.StakePool]
}

func (c OperationalCertificate) MarshalCBOR() ([]byte, error) {
	return canoncbor.Marshal(certWire{
		Body: certBodyWire{
			KesVKey:     c.kesVKey,
			IssueNumber: c.issueNumber,
			KesPeriod:   c.kesPeriod,
			Signature:   c.signature,
		},
		ColdVKey: c.coldVKey,
	})
}

func (c *OperationalCertificate) UnmarshalCBOR(data []byte) error {
	var w certWire
	if err := canoncbor.Unmarshal(data, &w); err != nil {
		return &keys.Error{Kind: keys.KindDecode, Type: CertificateEnvelopeType,
			Message: "operational certificate: malformed CBOR 2-tuple", Cause: err}
	}
	*c = OperationalCertificate{
		kesVKey:     w.Body.KesVKey,
		issueNumber: w.Body.IssueNumber,
		kesPeriod:   w.Body.KesPeriod,
		signature:   w.Body.Signature,
		coldVKey:    w.ColdVKey,
	}
	return nil
}

// ToEnvelope wraps the certificate in its text envelope.
func (c OperationalCertificate) ToEnvelope() (envelope.Envelope, error) {
	raw, err := c.MarshalCBOR()
	if err != nil {
		return envelope.Envelope{}, err
	}
	return envelope.New(CertificateEnvelopeType, "", raw), nil
}

// CertificateFromEnvelope reads a certificate from text-envelope bytes.
func CertificateFromEnvelope(data []byte) (OperationalCertificate, error) {
	raw, err := envelope.Decode(data, CertificateEnvelopeType)
	if err != nil {
		return OperationalCertificate{}, err
	}
	var c OperationalCertificate
	if err := c.UnmarshalCBOR(raw); err != nil {
		return OperationalCertificate{}, err
	}
	return c, nil
}
