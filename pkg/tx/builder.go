package tx

import (
	"encoding/hex"
	"fmt"

	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
)

// SignedTx is a signed, assembled transaction ready for broadcast.
type SignedTx struct {
	Envelope  Envelope
	Msg       Msg
	Signature Signature
	SignBytes []byte

	raw []byte
}

// Sign builds the sign bytes of msg under env, signs them with signer and
// assembles the broadcast blob. The produced signature is verified against
// the signer's public key before anything is returned.
func Sign(env Envelope, msg Msg, signer crypto.Signer) (*SignedTx, error) {
	signBytes, err := SignBytes(env, msg)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(signBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrSignature, err)
	}
	return attach(env, msg, signBytes, signer.PublicKey(), sig)
}

// Attach assembles msg with a signature produced elsewhere, for example by
// an offline or hardware signer working from SignBytes.
func Attach(env Envelope, msg Msg, pubKey, sig []byte) (*SignedTx, error) {
	signBytes, err := SignBytes(env, msg)
	if err != nil {
		return nil, err
	}
	return attach(env, msg, signBytes, pubKey, sig)
}

func attach(env Envelope, msg Msg, signBytes, pubKey, sig []byte) (*SignedTx, error) {
	if !crypto.VerifySignature(signBytes, sig, pubKey) {
		return nil, fmt.Errorf("%w: signature does not verify against public key", crypto.ErrSignature)
	}
	msgBin, err := EncodeMsg(msg)
	if err != nil {
		return nil, err
	}
	signature := Signature{
		PubKey:        append([]byte(nil), pubKey...),
		Signature:     append([]byte(nil), sig...),
		AccountNumber: env.AccountNumber,
		Sequence:      env.Sequence,
	}
	raw, err := Assemble(msgBin, signature, env.Memo, env.Source, env.Data)
	if err != nil {
		return nil, err
	}
	return &SignedTx{
		Envelope:  env,
		Msg:       msg,
		Signature: signature,
		SignBytes: signBytes,
		raw:       raw,
	}, nil
}

// Bytes returns a copy of the broadcast blob.
func (t *SignedTx) Bytes() []byte {
	return append([]byte(nil), t.raw...)
}

// Hex returns the lowercase hex encoding of the broadcast blob.
func (t *SignedTx) Hex() string {
	return hex.EncodeToString(t.raw)
}

// Hash returns the SHA-256 of the broadcast blob, the id the chain reports.
func (t *SignedTx) Hash() types.Hash {
	return crypto.Sha256(t.raw)
}
