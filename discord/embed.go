package discord

import (
	"lol-discord-bot/format"

	"github.com/bwmarrin/discordgo"
)

// Embed convierte una presentación en un embed de Discord.
func Embed(p format.Presentation) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: p.Title,
		Color: p.Color,
	}
	for _, f := range p.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	if p.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: p.ThumbnailURL}
	}
	if p.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: p.Footer}
	}
	return embed
}
