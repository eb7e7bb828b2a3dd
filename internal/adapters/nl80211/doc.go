// Package nl80211 retunes a wireless interface over generic netlink.
//
// Tuner issues NL80211_CMD_SET_WIPHY with the interface index and the
// centre frequency of the requested channel, the same request iw sends
// for "iw dev <iface> set channel <n>". It is only available on Linux.
package nl80211
