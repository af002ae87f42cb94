package command

// Command identifies one of the handler operations.
type Command int

const (
	CmdUnknown Command = iota
	CmdRegisterHint
	CmdRegister
	CmdBalance
	CmdClaimDaily
)

// commandTable maps trigger strings to commands. The casual registration
// phrases deliberately map to the hint; only the full confirmation phrase
// actually registers, which keeps accidental registrations out.
var commandTable = map[string]Command{
	"开通":     CmdRegisterHint,
	"开通菠菜":   CmdRegisterHint,
	"给我开通菠菜": CmdRegisterHint,
	"注册":     CmdRegisterHint,
	"注册菠菜":   CmdRegisterHint,
	"我要注册菠菜": CmdRegisterHint,
	"我要开通菠菜": CmdRegister,
	"余额":     CmdBalance,
	"领批":     CmdClaimDaily,

	// traditional forms
	"開通":     CmdRegisterHint,
	"開通菠菜":   CmdRegisterHint,
	"給我開通菠菜": CmdRegisterHint,
	"註冊":     CmdRegisterHint,
	"註冊菠菜":   CmdRegisterHint,
	"我要註冊菠菜": CmdRegisterHint,
	"我要開通菠菜": CmdRegister,
	"餘額":     CmdBalance,
	"領批":     CmdClaimDaily,
}

// Parse looks the text up in the command table.
func Parse(text string) Command {
	if cmd, ok := commandTable[text]; ok {
		return cmd
	}
	return CmdUnknown
}
