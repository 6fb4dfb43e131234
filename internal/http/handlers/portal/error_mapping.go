package portal

import (
	"errors"

	handlershared "github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/handlers/shared"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/http/response"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/service"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/verification"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError maps a service error to an envelope response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			handlershared.RespondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	handlershared.RespondError(c, fallbackCode, fallbackMsg, err)
}

var paymentCommonErrorRules = []mappedHandlerError{
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment_not_found"},
	{target: service.ErrEventNotFound, code: response.CodeNotFound, msg: "event_not_found"},
	{target: service.ErrPaymentAlreadyPaid, code: response.CodeConflict, msg: "payment_already_paid"},
	{target: service.ErrProofAlreadySubmitted, code: response.CodeConflict, msg: "proof_already_submitted"},
	{target: service.ErrNoProofAttached, code: response.CodeBadRequest, msg: "no_proof_attached"},
	{target: service.ErrProofRequired, code: response.CodeBadRequest, msg: "proof_required"},
	{target: service.ErrInvalidFileType, code: response.CodeBadRequest, msg: "invalid_file_type"},
	{target: service.ErrFileTooLarge, code: response.CodeBadRequest, msg: "file_too_large"},
	{target: service.ErrCommissionInvalid, code: response.CodeBadRequest, msg: "commission_invalid"},
	{target: service.ErrAmountInvalid, code: response.CodeBadRequest, msg: "amount_invalid"},
	{target: service.ErrDueAtRequired, code: response.CodeBadRequest, msg: "due_at_required"},
	{target: service.ErrActorForbidden, code: response.CodeForbidden, msg: "forbidden"},
	{target: verification.ErrVerifierUnreachable, code: response.CodeBadGateway, msg: "verifier_unreachable"},
}

var eventErrorRules = []mappedHandlerError{
	{target: service.ErrEventNotFound, code: response.CodeNotFound, msg: "event_not_found"},
	{target: service.ErrDJNotFound, code: response.CodeNotFound, msg: "dj_not_found"},
	{target: service.ErrAmountInvalid, code: response.CodeBadRequest, msg: "amount_invalid"},
}

var djErrorRules = []mappedHandlerError{
	{target: service.ErrDJNotFound, code: response.CodeNotFound, msg: "dj_not_found"},
	{target: service.ErrAmountInvalid, code: response.CodeBadRequest, msg: "amount_invalid"},
}

var contractErrorRules = []mappedHandlerError{
	{target: service.ErrContractNotFound, code: response.CodeNotFound, msg: "contract_not_found"},
	{target: service.ErrEventNotFound, code: response.CodeNotFound, msg: "event_not_found"},
}

var accountErrorRules = []mappedHandlerError{
	{target: service.ErrAccountNotFound, code: response.CodeNotFound, msg: "account_not_found"},
	{target: service.ErrAccountExists, code: response.CodeConflict, msg: "account_exists"},
	{target: service.ErrAccountEmailRequired, code: response.CodeBadRequest, msg: "email_required"},
	{target: service.ErrAccountPasswordRequired, code: response.CodeBadRequest, msg: "password_required"},
}
