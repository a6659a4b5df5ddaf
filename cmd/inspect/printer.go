package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"plainchat/domain"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

type printer struct {
	w       io.Writer
	colours bool
}

func (p printer) table(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// paint colours a status: green when settled, yellow while in progress, red on failure.
func (p printer) paint(status string) string {
	if !p.colours {
		return status
	}
	switch status {
	case string(domain.StatusSent), string(domain.PeerPaired), string(domain.MemberJoined), string(domain.DownloadCompleted):
		return color.FgGreen.Render(status)
	case string(domain.StatusFailed): // same value as domain.DownloadFailed
		return color.FgRed.Render(status)
	default:
		return color.FgYellow.Render(status)
	}
}

// short keeps ids readable.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (p printer) peers(peers []domain.Peer) {
	table := p.table("ID", "Name", "Type", "Addresses", "Port", "Status")
	for _, peer := range peers {
		table.Append([]string{
			peer.ID,
			peer.DisplayName(),
			string(peer.DeviceType),
			strings.Join(peer.Addresses, ","),
			strconv.Itoa(peer.Port),
			p.paint(string(peer.Status)),
		})
	}
	table.Render()
}

func (p printer) channels(channels []domain.Channel) {
	table := p.table("ID", "Name", "Owner", "Version", "Members")
	for _, c := range channels {
		joined := lo.CountBy(c.Members, func(m domain.ChannelMember) bool { return m.Status == domain.MemberJoined })
		table.Append([]string{
			c.ID,
			c.Name,
			c.Owner,
			strconv.FormatInt(c.Version, 10),
			fmt.Sprintf("%d/%d", joined, len(c.Members)),
		})
	}
	table.Render()
}

func (p printer) chats(chats []domain.ChatItem) {
	table := p.table("ID", "Conversation", "From", "Type", "Preview", "Delivery", "Status", "Created")
	for _, c := range chats {
		conversation := lo.Ternary(c.IsChannel(), domain.ChannelConversation(c.ChannelID), domain.PeerConversation(c.ToID))
		delivery := ""
		if c.StatusData != nil {
			delivery = c.StatusData.DeliveryLabel()
		}
		table.Append([]string{
			short(c.ID),
			conversation,
			short(c.FromID),
			string(c.Content.Type),
			c.Content.Preview(),
			delivery,
			p.paint(string(c.Status)),
			c.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

func (p printer) files(files []domain.StoredFile) {
	table := p.table("ID", "Size", "Mime", "Refs", "Updated")
	for _, f := range files {
		refs := strconv.Itoa(f.RefCount)
		if f.RefCount <= 0 && p.colours {
			refs = color.FgRed.Render(refs)
		}
		table.Append([]string{
			short(f.ID),
			strconv.FormatInt(f.Size, 10),
			f.MimeType,
			refs,
			f.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

func (p printer) downloads(tasks []domain.DownloadTask) {
	table := p.table("ID", "Chat", "Peer", "File", "Progress", "Status", "Retries", "Error")
	for _, t := range tasks {
		progress := t.Progress()
		table.Append([]string{
			short(t.ID),
			short(t.MessageID),
			short(t.PeerID),
			lo.Ternary(progress.FileName != "", progress.FileName, short(progress.FileID)),
			fmt.Sprintf("%d/%d", progress.Downloaded, progress.Total),
			p.paint(string(t.Status)),
			strconv.Itoa(t.RetryCount),
			t.Error,
		})
	}
	table.Render()
}
