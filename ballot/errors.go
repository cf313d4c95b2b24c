package ballot

import (
	"context"
	"errors"
	"strings"

	"charm-voting-tui/chainerr"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

const revertedPrefix = "execution reverted"

// revertReason extracts the Error(string) reason from a node error, either from the
// JSON-RPC error data or from the "execution reverted: ..." message.
func revertReason(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var de rpc.DataError
	if errors.As(err, &de) {
		if s, ok := de.ErrorData().(string); ok {
			if data, derr := hexutil.Decode(s); derr == nil {
				if reason, uerr := abi.UnpackRevert(data); uerr == nil {
					return reason, true
				}
			}
		}
	}

	msg := err.Error()
	idx := strings.Index(msg, revertedPrefix)
	if idx < 0 {
		return "", false
	}
	rest := strings.TrimSpace(strings.TrimPrefix(msg[idx+len(revertedPrefix):], ":"))
	return rest, true
}

// readError normalizes a failed view call
func readError(op string, err error) error {
	if reason, ok := revertReason(err); ok {
		return chainerr.Revert(chainerr.KindRemoteRead, op, reason, err)
	}
	return chainerr.New(chainerr.KindRemoteRead, op, err)
}

// writeError normalizes a failed transaction submission
func writeError(op string, err error) error {
	if chainerr.KindOf(err) != chainerr.KindUnknown {
		return err
	}
	if reason, ok := revertReason(err); ok {
		return chainerr.Revert(chainerr.KindWriteRejected, op, reason, err)
	}
	if isUserRejection(err) {
		return chainerr.New(chainerr.KindUserRejected, op, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return chainerr.New(chainerr.KindTimeout, op, err)
	}
	return chainerr.New(chainerr.KindNetwork, op, err)
}

// waitError normalizes a failed confirmation wait
func waitError(op string, err error) error {
	if chainerr.KindOf(err) != chainerr.KindUnknown {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return chainerr.New(chainerr.KindTimeout, op, err)
	}
	return chainerr.New(chainerr.KindNetwork, op, err)
}

// isUserRejection matches signer errors: EIP-1193 code 4001 or a locked keystore.
func isUserRejection(err error) bool {
	var ce rpc.Error
	if errors.As(err, &ce) && ce.ErrorCode() == 4001 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user denied") ||
		strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "authentication needed")
}
