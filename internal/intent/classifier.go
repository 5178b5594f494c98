// Package intent maps free-form text to a typed operation plus extracted
// parameters. It is a deterministic, ordered rule list, not a learned model:
// rules are evaluated top to bottom and the first match wins, so rule order
// is part of the contract. The classifier performs no authorization and has
// no side effects; callers consult the operation registry afterwards.
package intent

import (
	"regexp"
	"strings"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/operation"
)

// Result is a classified intent: the proposed operation and the parameters
// extracted from the text.
type Result struct {
	Operation operation.ID
	Params    map[string]string
}

// Classify maps text to an operation. The second return is false when no
// rule matches; callers must treat that as a non-actionable response, never
// as an implicit success.
func Classify(text string) (Result, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Result{}, false
	}

	lowered := strings.ToLower(trimmed)
	for _, r := range rules {
		if r.matches(lowered) {
			return Result{
				Operation: r.operation,
				Params:    r.extract(trimmed),
			}, true
		}
	}

	return Result{}, false
}

// rule is one classification pattern: trigger keywords (any matches, checked
// against lowercased input) and a parameter extractor run on the raw text.
type rule struct {
	operation operation.ID
	keywords  []string
	extract   func(text string) map[string]string
}

func (r rule) matches(lowered string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

var (
	emailPattern  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	numberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

	// Labelled key-value extractors. Both half- and full-width colons are
	// accepted; values end at a comma, enumeration comma or whitespace.
	namePattern   = labelled(`姓名|name`)
	emailLabelled = labelled(`邮箱|email`)
	rolePattern   = labelled(`角色|role`)
	amountLabel   = labelled(`金额|amount`)
	pointsLabel   = labelled(`积分|points`)
	tournLabel    = labelled(`比赛|赛事|tournament`)
)

func labelled(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + label + `)\s*[:：]\s*([^,，、\s]+)`)
}

func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func put(params map[string]string, key, value string) {
	if value != "" {
		params[key] = value
	}
}

// extractMemberParams pulls name/email/role from labelled pairs.
func extractMemberParams(text string) map[string]string {
	params := map[string]string{}
	put(params, "name", firstGroup(namePattern, text))
	put(params, "email", firstGroup(emailLabelled, text))
	put(params, "role", strings.ToUpper(firstGroup(rolePattern, text)))
	return params
}

// extractMoneyParams pulls email and amount, preferring labelled pairs and
// falling back to the first bare email and number in the text, which covers
// forms like "top up z@x.com 100".
func extractMoneyParams(text string) map[string]string {
	params := map[string]string{}

	email := firstGroup(emailLabelled, text)
	if email == "" {
		email = emailPattern.FindString(text)
	}
	put(params, "email", email)

	amount := firstGroup(amountLabel, text)
	if amount == "" {
		amount = numberPattern.FindString(text)
	}
	put(params, "amount", amount)

	return params
}

func extractPointsParams(text string) map[string]string {
	params := map[string]string{}

	email := firstGroup(emailLabelled, text)
	if email == "" {
		email = emailPattern.FindString(text)
	}
	put(params, "email", email)

	points := firstGroup(pointsLabel, text)
	if points == "" {
		points = numberPattern.FindString(text)
	}
	put(params, "points", points)

	return params
}

func extractTournamentParams(text string) map[string]string {
	params := map[string]string{}
	put(params, "tournament", firstGroup(tournLabel, text))
	return params
}

func noParams(string) map[string]string {
	return map[string]string{}
}

// rules is the ordered rule list. Order is load-bearing:
//   - cancel_registration precedes register_tournament because "取消报名"
//     contains "报名";
//   - get_points precedes get_balance because "积分余额" contains "余额";
//   - redeem precedes award so "扣积分" is not swallowed by a broader rule.
var rules = []rule{
	{operation.OpCreateMember, []string{"创建会员", "新增会员", "添加会员", "create member", "add member", "new member"}, extractMemberParams},
	{operation.OpChangeRole, []string{"修改角色", "变更角色", "change role", "set role"}, extractMemberParams},
	{operation.OpDeposit, []string{"充值", "存入", "上分", "top up", "deposit"}, extractMoneyParams},
	{operation.OpWithdraw, []string{"提现", "取出", "下分", "withdraw", "cash out"}, extractMoneyParams},
	{operation.OpAdjustBalance, []string{"调整余额", "手动调整", "adjust balance"}, extractMoneyParams},
	{operation.OpRedeemPoints, []string{"兑换积分", "扣积分", "扣除积分", "redeem points", "deduct points"}, extractPointsParams},
	{operation.OpAwardPoints, []string{"加积分", "奖励积分", "赠送积分", "award points", "add points", "give points"}, extractPointsParams},
	{operation.OpGetPoints, []string{"积分", "points"}, noParams},
	{operation.OpCancelRegistration, []string{"取消报名", "退赛", "unregister", "cancel registration", "cancel my registration"}, extractTournamentParams},
	{operation.OpRegisterTournament, []string{"报名", "参加比赛", "register", "sign up", "join tournament"}, extractTournamentParams},
	{operation.OpCancelTournament, []string{"取消比赛", "取消赛事", "cancel tournament", "cancel the tournament"}, extractTournamentParams},
	{operation.OpCreateTournament, []string{"创建比赛", "新建赛事", "create tournament", "new tournament"}, extractTournamentParams},
	{operation.OpListTournaments, []string{"比赛列表", "赛事列表", "有什么比赛", "tournaments", "tournament list"}, noParams},
	{operation.OpListMembers, []string{"会员列表", "所有会员", "list members", "member list"}, noParams},
	{operation.OpGetBalance, []string{"余额", "balance"}, noParams},
	{operation.OpListTransactions, []string{"流水", "交易记录", "账单", "transactions", "transaction history", "statement"}, noParams},
}
