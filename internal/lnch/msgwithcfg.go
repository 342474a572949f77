//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"github.com/e-gun/OratioGoServer/internal/vv"
)

// UpdateMessageMakerWithConfig - the messenger is born before the config is read; refresh it
func UpdateMessageMakerWithConfig() {
	Msg.BW = Config.BlackAndWhite
	Msg.LLvl = Config.LogLevel
	Msg.LNm = vv.MYNAME
	Msg.SNm = vv.SHORTNAME
	Msg.Tick = Config.TickerActive
	Msg.Ver = vv.VERSION
}
