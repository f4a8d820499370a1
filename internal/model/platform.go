package model

// platformNames IGDB平台编码→展示名称静态表
// 只收录馆藏范围内的复古平台，编码不在表内视为非法请求
var platformNames = map[string]string{
	"64": "Master System",
	"29": "Mega Drive",
	"23": "Dreamcast",
	"35": "Game Gear",
	"18": "NES",
	"19": "SNES",
	"33": "Game Boy",
	"22": "GB color",
	"24": "GB advance",
	"7":  "Playstation",
	"61": "Lynx",
}

// PlatformName 按IGDB平台编码查询展示名称
func PlatformName(code string) (string, bool) {
	name, ok := platformNames[code]
	return name, ok
}
