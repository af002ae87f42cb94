package gateway

import (
	"fmt"
	"math/rand"

	"GroupBank/internal/command"
)

// Reply templates. The core hands back structured results; everything
// user-facing is assembled here.

func renderNotRegistered(qq int64) []Segment {
	return []Segment{At(qq), Plain("，你还没有开通菠菜")}
}

func renderRegisterNotify() []Segment {
	return []Segment{Plain("是我要开通菠菜，你会不会开通菠菜")}
}

func renderAlreadyRegistered(qq int64) []Segment {
	return []Segment{At(qq), Plain("，你已经开通过了")}
}

func renderRegistered(qq, balance int64) []Segment {
	return []Segment{At(qq), Plain(fmt.Sprintf("，你可以开始开箱了，送给你%d个批", balance))}
}

func renderRegisterFail() []Segment {
	return []Segment{Plain("开通失败，请联系管理员，，")}
}

func renderBalance(qq int64, info command.BalanceInfo, maxStamina int) []Segment {
	head := fmt.Sprintf("，你的余额为%d个批，%d把钥匙\n", info.Currency, info.Keys)

	var body string
	if info.ExtraStamina > 0 {
		body = fmt.Sprintf("你还有%d(+%d)点体力", info.Stamina, info.ExtraStamina)
	} else {
		body = fmt.Sprintf("你还有%d点体力", info.Stamina)
	}
	if info.Stamina < maxStamina {
		secs := int64(info.TimeToFull.Seconds())
		body += fmt.Sprintf("，回满还需%d小时%d分钟", secs/3600, secs/60%60)
	}

	return []Segment{At(qq), Plain(head), Plain(body)}
}

func renderGroupDisabled() []Segment {
	return []Segment{Plain("本群被隔离了，么得领批/cy")}
}

func renderAlreadyClaimed(qq int64) []Segment {
	return []Segment{At(qq), Plain("，你今天已经领过了，明天再来8")}
}

func renderClaim(qq int64, res command.ClaimResult) []Segment {
	if res.Bonus > 0 {
		return []Segment{
			At(qq),
			Plain(fmt.Sprintf("，你今天领到%d个批，甚至还有先到的%d个批\n", res.Base, res.Bonus)),
			Plain(fmt.Sprintf("现在批池还剩%d个批", res.PoolRemain)),
		}
	}
	return []Segment{
		At(qq),
		Plain(fmt.Sprintf("，你今天领到%d个批\n", res.Base)),
		Plain("每日批池么得了，明天请踩点"),
	}
}

// refreshLines are the equivalent cycle-refresh announcements; one is
// picked pseudo-randomly per broadcast.
var refreshLines = []string{
	"每日批池刷新了",
	"每日批池刷新了；额",
	"每日批次号刷新了",
	"没人批i吃刷新了",
	"每日P池刷新率；呃",
	"P 풀은 매일 새로 고쳐집니다",
	"may rii pee cii shruaa xinn laaar",
	"刷了",
}

// RefreshLine picks one of the refresh announcements.
func RefreshLine(rng *rand.Rand) string {
	return refreshLines[rng.Intn(len(refreshLines))]
}
