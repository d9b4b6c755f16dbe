package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"warden-bot/bot"
	"warden-bot/utils"
	"warden-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// HandleStatus reports host and bot health, including the depth of the
// delayed-job queue.
func HandleStatus(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionManageServer) &&
		!utils.IsDeveloper(b.Config.DeveloperUserIDs, i.Member.User.ID) {
		utils.SendErrorResponse(s, i, "You do not have permission to view the bot status.")
		return
	}

	cpuCount, _ := cpu.Counts(true)
	cpuPercent, _ := cpu.Percent(0, false)
	cpuUsage := 0.0
	if len(cpuPercent) > 0 {
		cpuUsage = cpuPercent[0]
	}
	vm, _ := mem.VirtualMemory()
	hostInfo, _ := host.Info()

	var dbSize int64
	if info, err := os.Stat(filepath.Join(b.Config.DataDir, "warden.db")); err == nil {
		dbSize = info.Size() / 1024
	}

	pendingJobs, err := database.CountJobs(b.DB)
	if err != nil {
		pendingJobs = 0
	}

	embed := &discordgo.MessageEmbed{
		Title: "Bot Status",
		Color: 0x5865F2, // Discord Blurple
		Fields: []*discordgo.MessageEmbedField{
			{Name: "💻 OS", Value: fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion), Inline: true},
			{Name: "🔧 Kernel", Value: hostInfo.KernelVersion, Inline: true},
			{Name: "🐹 Go", Value: runtime.Version(), Inline: true},
			{Name: "🔼 CPUs", Value: fmt.Sprintf("%d", cpuCount), Inline: true},
			{Name: "🔥 CPU usage", Value: fmt.Sprintf("%.1f%%", cpuUsage), Inline: true},
			{Name: "🧠 Memory", Value: fmt.Sprintf("%.1f%% (%d MB / %d MB)", vm.UsedPercent, vm.Used/1024/1024, vm.Total/1024/1024), Inline: true},
			{Name: "🗃️ Database", Value: fmt.Sprintf("%d KB", dbSize), Inline: true},
			{Name: "⏱️ Latency", Value: s.HeartbeatLatency().String(), Inline: true},
			{Name: "🚀 Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
			{Name: "🌍 Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "⏳ Pending jobs", Value: fmt.Sprintf("%d", pendingJobs), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: time.Now().Format("2006-01-02 15:04"),
		},
	}
	utils.SendEmbedResponse(s, i, embed, true)
}
