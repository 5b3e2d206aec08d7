package domain

type CommandType string

const (
	CommandHelp         CommandType = "王者功能"
	CommandMatchHistory CommandType = "王者战绩"
	CommandProfile      CommandType = "王者资料"
	CommandHeroPower    CommandType = "上榜战力"
	CommandRosterAll    CommandType = "角色查看"
	CommandRosterAdd    CommandType = "角色添加"
	CommandRosterUpdate CommandType = "角色修改"
	CommandRosterDelete CommandType = "角色删除"
	CommandRosterSearch CommandType = "角色查询"
)

func (c CommandType) String() string {
	return string(c)
}

// AllCommands lists the commands in help order.
func AllCommands() []CommandType {
	return []CommandType{
		CommandHelp,
		CommandMatchHistory,
		CommandProfile,
		CommandHeroPower,
		CommandRosterAll,
		CommandRosterAdd,
		CommandRosterUpdate,
		CommandRosterDelete,
		CommandRosterSearch,
	}
}
