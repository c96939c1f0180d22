package wallet

import (
	"sync"
	"testing"

	"github.com/Klingon-tech/binance-chain-go/pkg/crypto"
	"github.com/Klingon-tech/binance-chain-go/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestFromMnemonic_KnownVector(t *testing.T) {
	w, err := FromMnemonic(types.Mainnet, testMnemonic, "")
	require.NoError(t, err)
	require.Equal(t, "bnb1rxhz5vdv4fvdjye8gxqvfv0yvg20jtlwf4f38d", w.AddressString())
	require.Equal(t, "3955f430d8372b601f3a70c10a707f94c509fb3c51c1e94ddbb7ab9906cb659d", w.PrivateKeyHex())
	require.Equal(t, "02a5c1a09e80070d4f42e4c577b1cd840e12f775b83afd07dc01dde138adf64ea9", w.PublicKeyHex())
	require.Equal(t, testMnemonic, w.Mnemonic())
	require.Equal(t, DefaultPath, w.Path())

	tw, err := FromMnemonic(types.Testnet, testMnemonic, "")
	require.NoError(t, err)
	require.Equal(t, "tbnb1rxhz5vdv4fvdjye8gxqvfv0yvg20jtlw8qq48u", tw.AddressString())
	require.Equal(t, w.Address(), tw.Address())
}

func TestFromMnemonic_Invalid(t *testing.T) {
	_, err := FromMnemonic(types.Mainnet, "abandon abandon", "")
	require.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestFromMnemonicPath_OtherIndex(t *testing.T) {
	path, err := AccountPath(0, 1)
	require.NoError(t, err)
	w, err := FromMnemonicPath(types.Mainnet, testMnemonic, "", path)
	require.NoError(t, err)

	def, err := FromMnemonic(types.Mainnet, testMnemonic, "")
	require.NoError(t, err)
	require.NotEqual(t, def.Address(), w.Address())
	require.Equal(t, path, w.Path())
}

func TestFromPrivateKey(t *testing.T) {
	w, err := FromPrivateKey(types.Testnet, "90335b9d2153ad1a9799a3ccc070bd64b4164e9642ee1dd48053c33f9a3a05e9")
	require.NoError(t, err)
	require.Equal(t, "tbnb1hgm0p7khfk85zpz5v0j8wnej3a90w709zzlffd", w.AddressString())
	require.Empty(t, w.Mnemonic())
	require.Nil(t, w.Path())
	require.Equal(t, types.Testnet, w.Network())

	_, err = FromPrivateKey(types.Testnet, "00")
	require.ErrorIs(t, err, crypto.ErrInvalidPrivateKey)
}

func TestNewWithMnemonic_Recoverable(t *testing.T) {
	w, err := NewWithMnemonic(types.Mainnet, "pass")
	require.NoError(t, err)
	require.NotEmpty(t, w.Mnemonic())

	again, err := FromMnemonic(types.Mainnet, w.Mnemonic(), "pass")
	require.NoError(t, err)
	require.Equal(t, w.Address(), again.Address())
}

func TestNew_Random(t *testing.T) {
	a, err := New(types.Mainnet)
	require.NoError(t, err)
	b, err := New(types.Mainnet)
	require.NoError(t, err)
	require.NotEqual(t, a.Address(), b.Address())
}

func TestWallet_KeystoreRoundTrip(t *testing.T) {
	w, err := FromMnemonic(types.Mainnet, testMnemonic, "")
	require.NoError(t, err)

	doc, err := w.Keystore("secret", fastParams)
	require.NoError(t, err)

	restored, err := FromKeystore(types.Mainnet, doc, "secret")
	require.NoError(t, err)
	require.Equal(t, w.Address(), restored.Address())
	require.Equal(t, w.PrivateKeyHex(), restored.PrivateKeyHex())

	_, err = FromKeystore(types.Mainnet, doc, "nope")
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestWallet_SignVerifyConcurrent(t *testing.T) {
	w, err := FromMnemonic(types.Mainnet, testMnemonic, "")
	require.NoError(t, err)

	msg := []byte("sign me")
	want, err := w.Sign(msg)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sig, err := w.Sign(msg)
			if err != nil {
				errs <- err
				return
			}
			if string(sig) != string(want) || !w.Verify(msg, sig) {
				errs <- crypto.ErrSignature
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	require.False(t, w.Verify([]byte("other"), want))
}
